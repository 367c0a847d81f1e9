package fsm

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ziguss/fsm/pkg/logger"
)

// StateMachine drives a Stateful object through the transitions of a Config.
//
// The machine keeps no state of its own: the current state is read from the
// object on every call. It does no locking; callers sharing one object across
// goroutines must serialize access themselves.
type StateMachine struct {
	object Stateful
	config *Config
	logger *slog.Logger
}

// New normalizes def and binds it to object.
func New(object Stateful, def Definition, opts ...Option) (*StateMachine, error) {
	if object == nil {
		return nil, ErrNilObject
	}
	cfg, err := NewConfig(def)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(object, cfg, opts...), nil
}

// MustNew is like New but panics on error.
func MustNew(object Stateful, def Definition, opts ...Option) *StateMachine {
	sm, err := New(object, def, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

// NewWithConfig binds an already normalized Config to object.
// Use it to drive many objects through one graph without re-validating.
func NewWithConfig(object Stateful, cfg *Config, opts ...Option) *StateMachine {
	if object == nil {
		panic(ErrNilObject)
	}
	if cfg == nil {
		panic("fsm: nil config")
	}
	sm := &StateMachine{
		object: object,
		config: cfg,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(sm)
	}
	sm.logger = sm.logger.With(logger.Graph(cfg.graph))
	return sm
}

func (sm *StateMachine) Graph() string {
	return sm.config.graph
}

func (sm *StateMachine) Object() Stateful {
	return sm.object
}

func (sm *StateMachine) Config() *Config {
	return sm.config
}

// State returns the object's current state.
func (sm *StateMachine) State() string {
	return sm.object.FiniteState()
}

// FinalStates returns the states with no outgoing transition.
func (sm *StateMachine) FinalStates() []string {
	return sm.config.FinalStates()
}

// IsFinal reports whether the object currently sits in a final state.
func (sm *StateMachine) IsFinal() bool {
	return slices.Contains(sm.config.FinalStates(), sm.State())
}

// NewEvent builds an event for transition starting at the current state.
// The engine builds its own events; this is for callers that invoke
// listeners directly.
func (sm *StateMachine) NewEvent(transition string) *TransitionEvent {
	return newTransitionEvent(transition, sm.State(), sm)
}

// IsEnabled reports whether transition can be applied right now. Unknown
// transitions are never enabled. Unless WithoutTestDispatch is given, test
// listeners are dispatched and may veto; an error returned by one of them is
// passed through unchanged.
func (sm *StateMachine) IsEnabled(ctx context.Context, transition string, opts ...CheckOption) (bool, error) {
	cfg := defaultCheckConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t, ok := sm.config.transitions[transition]
	if !ok {
		return false, nil
	}

	state := sm.State()
	if !t.CanStartFrom(state) {
		return false, nil
	}

	if !cfg.dispatchTest {
		return true, nil
	}

	event := newTransitionEvent(transition, state, sm)
	if err := sm.dispatch(ctx, event, PositionTest); err != nil {
		return false, err
	}
	if event.Rejected() {
		sm.logger.DebugContext(ctx, "transition rejected",
			logger.Transition(transition),
			logger.FromState(state),
		)
		return false, nil
	}
	return true, nil
}

// EnabledTransitions returns, in declaration order, every transition for
// which IsEnabled holds.
func (sm *StateMachine) EnabledTransitions(ctx context.Context, opts ...CheckOption) ([]string, error) {
	enabled := make([]string, 0, len(sm.config.order))
	for _, name := range sm.config.order {
		ok, err := sm.IsEnabled(ctx, name, opts...)
		if err != nil {
			return nil, err
		}
		if ok {
			enabled = append(enabled, name)
		}
	}
	return enabled, nil
}

// Apply takes transition: it re-checks enablement (dispatching test
// listeners), dispatches before listeners, writes the target state on the
// object and dispatches after listeners. Before and after listeners cannot
// veto; an error from any listener aborts the remaining steps and is returned
// unchanged.
func (sm *StateMachine) Apply(ctx context.Context, transition string) error {
	enabled, err := sm.IsEnabled(ctx, transition)
	if err != nil {
		return err
	}
	if !enabled {
		return NewErrInvalidTransition(transition, sm.State(), sm.object, sm.config.graph)
	}

	event := newTransitionEvent(transition, sm.State(), sm)
	if err := sm.dispatch(ctx, event, PositionBefore); err != nil {
		return err
	}

	to := sm.config.transitions[transition].To
	sm.object.SetFiniteState(to)

	sm.logger.DebugContext(ctx, "transition applied",
		logger.Transition(transition),
		logger.FromState(event.From()),
		logger.ToState(to),
	)

	return sm.dispatch(ctx, event, PositionAfter)
}

// dispatch invokes, in registration order, every rule at position that
// matches the event. All matching rules fire; the first error stops the loop.
func (sm *StateMachine) dispatch(ctx context.Context, event *TransitionEvent, position Position) error {
	rules := sm.config.listeners[position]
	if len(rules) == 0 {
		return nil
	}
	for _, rule := range rules {
		if !rule.Matches(event) {
			continue
		}
		if err := rule.action.Handle(ctx, event, position); err != nil {
			sm.logger.DebugContext(ctx, "listener failed",
				logger.Transition(event.Transition()),
				logger.Position(string(position)),
				logger.Error(err),
			)
			return err
		}
	}
	return nil
}
