// Package history records the transitions applied by fsm state machines.
//
// A Recorder is an fsm.Listener. Register it at the after position, with or
// without filters, and every successful Apply matching the rule is stored as
// an Entry:
//
//	rec := history.NewRecorder(history.WithCapacity(500))
//	def.Listeners[fsm.PositionAfter] = append(def.Listeners[fsm.PositionAfter],
//	    fsm.ListenerSpec{Do: rec},
//	)
//
//	for _, e := range rec.Entries(task.ID()) {
//	    fmt.Println(e.Transition, e.From, "->", e.To)
//	}
//
// Objects implementing Identifier get their ID stored on each entry so one
// Recorder can serve many objects driven through the same graph.
//
// Entries live in memory only and the oldest are dropped once the capacity
// is reached.
package history
