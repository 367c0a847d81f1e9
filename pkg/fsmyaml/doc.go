// Package fsmyaml loads fsm graph definitions from YAML documents. JSON is a
// subset of YAML and is accepted as well.
//
// The document layout follows fsm.Definition:
//
//	graph: task
//	states: [unassigned, assigned, done]
//	initial: unassigned
//	transitions:
//	  take:     {from: unassigned, to: assigned}
//	  assign:   {from: [unassigned], to: assigned}
//	  unAssign: {from: assigned, to: unassigned}
//	  finish:   {from: assigned, to: done}
//	  cancel:   ~
//	listeners:
//	  test:
//	    - {on: take, do: reject}
//	  after:
//	    - history
//	    - {excluded_to: assigned, do: notify}
//
// Transitions keep their document order, which is the order
// fsm.StateMachine.EnabledTransitions reports them in. A null transition is a
// placeholder and is dropped by fsm.NewConfig. Any filter and any "from" may
// be a single string or a list. A listener is either a bare name or a mapping
// whose "do" (or "action") key holds the name. Names are resolved against a
// Registry supplied by the caller:
//
//	reg := fsmyaml.Registry{}.
//	    Register("reject", fsm.Rejector()).
//	    Register("history", recorder)
//
//	def, err := fsmyaml.LoadFile("task.yaml", reg)
//	if err != nil { /* ... */ }
//	sm, err := fsm.New(task, def)
//
// Absent required keys are left empty so that fsm.NewConfig reports them.
package fsmyaml
