package fsm_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ziguss/fsm/pkg/fsm"
)

// call is one listener invocation seen by a recorder.
type call struct {
	Position   fsm.Position
	Transition string
	From       string
	To         string
	State      string // object state at the time of the call
}

// recorder is a listener that remembers every invocation.
type recorder struct {
	calls []call
}

func (r *recorder) Handle(_ context.Context, e *fsm.TransitionEvent, pos fsm.Position) error {
	r.calls = append(r.calls, call{
		Position:   pos,
		Transition: e.Transition(),
		From:       e.From(),
		To:         e.To(),
		State:      e.Machine().State(),
	})
	return nil
}

func (r *recorder) fired(pos fsm.Position) bool {
	for _, c := range r.calls {
		if c.Position == pos {
			return true
		}
	}
	return false
}

func (r *recorder) count(pos fsm.Position) int {
	n := 0
	for _, c := range r.calls {
		if c.Position == pos {
			n++
		}
	}
	return n
}

// mockListener is a testify mock implementation of fsm.Listener.
type mockListener struct {
	mock.Mock
}

func (m *mockListener) Handle(ctx context.Context, e *fsm.TransitionEvent, pos fsm.Position) error {
	args := m.Called(ctx, e, pos)
	return args.Error(0)
}

func taskTransitions() []fsm.TransitionSpec {
	return []fsm.TransitionSpec{
		{Name: "take", From: []string{"unassigned"}, To: "assigned"},
		{Name: "assign", From: []string{"unassigned"}, To: "assigned"},
		{Name: "unAssign", From: []string{"assigned"}, To: "unassigned"},
		{Name: "finish", From: []string{"assigned"}, To: "done"},
	}
}

// taskDefinition is the reference task graph: "take" is always vetoed by a
// test listener, rec observes every position.
func taskDefinition(rec fsm.Listener) fsm.Definition {
	return fsm.Definition{
		Graph:       "task",
		States:      []string{"unassigned", "assigned", "done"},
		Initial:     "unassigned",
		Transitions: taskTransitions(),
		Listeners: map[fsm.Position][]fsm.ListenerSpec{
			fsm.PositionTest: {
				{On: []string{"take"}, Do: fsm.Rejector()},
				{Do: rec},
			},
			fsm.PositionBefore: {{Do: rec}},
			fsm.PositionAfter:  {{Do: rec}},
		},
	}
}

func newTaskMachine(rec fsm.Listener) (*fsm.StateMachine, *fsm.Object) {
	obj := fsm.NewObject("unassigned")
	return fsm.MustNew(obj, taskDefinition(rec)), obj
}
