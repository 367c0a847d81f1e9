package fsm_test

import (
	"context"
	"fmt"

	"github.com/ziguss/fsm/pkg/fsm"
)

func Example() {
	ctx := context.Background()

	announce := fsm.ListenerFunc(func(_ context.Context, e *fsm.TransitionEvent, _ fsm.Position) error {
		fmt.Printf("%s: %s -> %s\n", e.Transition(), e.From(), e.To())
		return nil
	})

	def := fsm.Definition{
		Graph:  "task",
		States: []string{"unassigned", "assigned", "done"},
		Transitions: []fsm.TransitionSpec{
			{Name: "take", From: []string{"unassigned"}, To: "assigned"},
			{Name: "assign", From: []string{"unassigned"}, To: "assigned"},
			{Name: "unAssign", From: []string{"assigned"}, To: "unassigned"},
			{Name: "finish", From: []string{"assigned"}, To: "done"},
		},
		Listeners: map[fsm.Position][]fsm.ListenerSpec{
			fsm.PositionTest:  {{On: []string{"take"}, Do: fsm.Rejector()}},
			fsm.PositionAfter: {{Do: announce}},
		},
	}

	task := fsm.NewObject("unassigned")
	sm := fsm.MustNew(task, def)

	enabled, _ := sm.EnabledTransitions(ctx)
	fmt.Println(enabled)

	_ = sm.Apply(ctx, "assign")
	enabled, _ = sm.EnabledTransitions(ctx)
	fmt.Println(enabled)

	_ = sm.Apply(ctx, "finish")
	fmt.Println(sm.State(), sm.IsFinal())

	// Output:
	// [assign]
	// assign: unassigned -> assigned
	// [unAssign finish]
	// finish: assigned -> done
	// done true
}

func ExampleStateMachine_Apply_invalid() {
	sm := fsm.MustNew(fsm.NewObject("unassigned"), fsm.Definition{
		Graph:  "task",
		States: []string{"unassigned", "assigned"},
		Transitions: []fsm.TransitionSpec{
			{Name: "assign", From: []string{"unassigned"}, To: "assigned"},
			{Name: "unAssign", From: []string{"assigned"}, To: "unassigned"},
		},
	})

	err := sm.Apply(context.Background(), "unAssign")
	fmt.Println(fsm.IsInvalidTransitionError(err))
	fmt.Println(err)

	// Output:
	// true
	// transition "unAssign" cannot be applied on state "unassigned" of object "*fsm.Object" with graph "task"
}
