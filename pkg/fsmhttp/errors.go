package fsmhttp

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNoInitialState  = errors.New("graph has no state to start from")
	ErrHistoryDisabled = errors.New("history is not recorded")
)
