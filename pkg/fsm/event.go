package fsm

// TransitionEvent describes one attempt to take a transition. A fresh event
// is built for every enablement check and for every Apply.
//
// The target state is not stored: it is resolved from the owning machine's
// Config on access. The machine reference is only used for that lookup.
type TransitionEvent struct {
	transition string
	from       string
	machine    *StateMachine
	rejected   bool
}

func newTransitionEvent(transition, from string, machine *StateMachine) *TransitionEvent {
	return &TransitionEvent{
		transition: transition,
		from:       from,
		machine:    machine,
	}
}

func (e *TransitionEvent) Transition() string {
	return e.transition
}

// From returns the object state at the time the event was created.
func (e *TransitionEvent) From() string {
	return e.from
}

// To returns the transition's target state, or "" for a transition unknown to the graph.
func (e *TransitionEvent) To() string {
	return e.machine.config.transitions[e.transition].To
}

// Definition returns the normalized transition the event refers to.
func (e *TransitionEvent) Definition() Transition {
	t, _ := e.machine.config.Transition(e.transition)
	return t
}

func (e *TransitionEvent) Machine() *StateMachine {
	return e.machine
}

// Reject vetoes the transition. Only meaningful for test position listeners;
// a rejected event cannot be un-rejected.
func (e *TransitionEvent) Reject() {
	e.rejected = true
}

func (e *TransitionEvent) Rejected() bool {
	return e.rejected
}
