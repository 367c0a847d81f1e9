package fsm

// Stateful is implemented by any object whose state is driven by a StateMachine.
// The machine reads the state on every query and writes it exactly once per
// successful Apply.
type Stateful interface {
	FiniteState() string
	SetFiniteState(state string)
}

// Object is a minimal Stateful holding nothing but its state.
type Object struct {
	state string
}

// NewObject returns an Object positioned at the given state.
func NewObject(initial string) *Object {
	return &Object{state: initial}
}

func (o *Object) FiniteState() string {
	return o.state
}

func (o *Object) SetFiniteState(state string) {
	o.state = state
}
