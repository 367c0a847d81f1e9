// Package fsmhttp exposes a state machine graph over HTTP.
//
// Router serves in-memory tasks that walk the graph of a shared fsm.Config.
// Every request builds a short-lived fsm.StateMachine around the addressed
// task while holding that task's lock, so concurrent requests for one task
// are serialized and requests for different tasks run in parallel.
//
// Responses are JSON envelopes with either a "data" or an "error" member.
// A transition that is not enabled yields 409 with code
// "transition_not_enabled"; a failing listener yields 500.
//
//	rec := history.NewRecorder()
//	h := fsmhttp.Router(cfg,
//		fsmhttp.WithHistory(rec),
//		fsmhttp.WithLogger(log),
//	)
//	http.ListenAndServe(":8080", h)
package fsmhttp
