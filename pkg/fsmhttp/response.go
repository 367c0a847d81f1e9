package fsmhttp

import (
	"encoding/json"
	"net/http"
)

// envelope is the body of every JSON response.
type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeErrorWithData(w, status, code, err, nil)
}

// writeErrorWithData reports err alongside data that is still valid, such as
// a task whose state changed before the failure.
func writeErrorWithData(w http.ResponseWriter, status int, code string, err error, data any) {
	writeJSON(w, status, envelope{Data: data, Error: &errorDetail{Code: code, Message: err.Error()}})
}
