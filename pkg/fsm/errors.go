package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrConfig               = errors.New("invalid state machine config")
	ErrTransitionNotEnabled = errors.New("transition not enabled")
	ErrNilObject            = errors.New("stateful object cannot be nil")
)

// ErrInvalidConfig indicates a definition that cannot be normalized into a Config.
type ErrInvalidConfig struct {
	Key    string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing state machine config %s", e.Key)
	}
	return e.Reason
}

func (e *ErrInvalidConfig) Is(target error) bool {
	return target == ErrConfig
}

// NewErrMissingConfig reports an absent required top-level key.
func NewErrMissingConfig(key string) *ErrInvalidConfig {
	return &ErrInvalidConfig{Key: key}
}

func NewErrInvalidConfig(key, format string, args ...any) *ErrInvalidConfig {
	return &ErrInvalidConfig{
		Key:    key,
		Reason: fmt.Sprintf(format, args...),
	}
}

// ErrInvalidTransition indicates Apply was called for a transition that is
// unknown, not reachable from the current state, or vetoed by a test listener.
type ErrInvalidTransition struct {
	Transition string
	State      string
	Object     Stateful
	Graph      string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("transition %q cannot be applied on state %q of object %q with graph %q",
		e.Transition, e.State, fmt.Sprintf("%T", e.Object), e.Graph)
}

func (e *ErrInvalidTransition) Is(target error) bool {
	return target == ErrTransitionNotEnabled
}

func NewErrInvalidTransition(transition, state string, object Stateful, graph string) *ErrInvalidTransition {
	return &ErrInvalidTransition{
		Transition: transition,
		State:      state,
		Object:     object,
		Graph:      graph,
	}
}

func IsInvalidConfigError(err error) bool {
	var e *ErrInvalidConfig
	return errors.As(err, &e)
}

func IsInvalidTransitionError(err error) bool {
	var e *ErrInvalidTransition
	return errors.As(err, &e)
}
