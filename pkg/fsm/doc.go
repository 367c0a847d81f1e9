// Package fsm implements a declarative finite-state-machine engine that drives
// the state of an external object through named transitions.
//
// A graph is described once as a Definition (states, transitions and
// listener rules) and normalized into an immutable Config. A StateMachine
// binds a Config to any value implementing Stateful and answers three
// questions:
//  1. Which transitions are legal right now (IsEnabled, EnabledTransitions)
//  2. What happens when one is taken (Apply)
//  3. Whether the object has reached the end of the graph (FinalStates, IsFinal)
//
// The machine owns no state. The current state always comes from the object,
// and Apply writes the new state back through SetFiniteState exactly once.
//
// # Listeners
//
// Listener rules are attached to one of three lifecycle positions:
//
//   - test: dispatched by every enablement check; a listener may call
//     TransitionEvent.Reject to veto the transition.
//   - before: dispatched by Apply right before the state is written.
//   - after: dispatched by Apply right after the state is written.
//
// Each rule may narrow the events it receives with positive filters (On,
// From, To) and negative filters (ExcludedOn, ExcludedFrom, ExcludedTo)
// compared against the transition name, the source state and the target
// state. Empty filters impose no constraint, so a rule without filters is a
// catch-all. All matching rules fire in registration order.
//
// # Usage
//
//	def := fsm.Definition{
//	    Graph:  "task",
//	    States: []string{"unassigned", "assigned", "done"},
//	    Transitions: []fsm.TransitionSpec{
//	        {Name: "assign", From: []string{"unassigned"}, To: "assigned"},
//	        {Name: "finish", From: []string{"assigned"}, To: "done"},
//	    },
//	    Listeners: map[fsm.Position][]fsm.ListenerSpec{
//	        fsm.PositionTest: {{On: []string{"finish"}, Do: checkReviewed}},
//	    },
//	}
//
//	sm, err := fsm.New(task, def)
//	if err != nil { /* invalid definition */ }
//
//	if err := sm.Apply(ctx, "assign"); err != nil { /* ... */ }
//
// # Error Handling
//
// NewConfig and New fail with *ErrInvalidConfig; Apply fails with
// *ErrInvalidTransition when the transition is not enabled, in which case the
// object is left untouched. Errors returned by listeners are never wrapped.
//
//	if fsm.IsInvalidTransitionError(err) { /* ... */ }
//	if errors.Is(err, fsm.ErrConfig)      { /* ... */ }
//
// # Concurrency
//
// Every operation runs to completion on the caller's goroutine, listeners
// included. StateMachine does no locking: serialize access to one object
// yourself. A Config is read-only and may be shared freely.
package fsm
