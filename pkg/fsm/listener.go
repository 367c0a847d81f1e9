package fsm

import (
	"context"
	"slices"
)

// Position is a lifecycle point at which listeners are dispatched.
type Position string

const (
	// PositionTest runs during enablement checks; listeners may veto by calling Reject.
	PositionTest Position = "test"
	// PositionBefore runs right before the object state is written.
	PositionBefore Position = "before"
	// PositionAfter runs right after the object state is written.
	PositionAfter Position = "after"
)

// Positions lists every lifecycle position in dispatch order of a successful Apply.
var Positions = []Position{PositionTest, PositionBefore, PositionAfter}

func (p Position) String() string {
	return string(p)
}

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	return slices.Contains(Positions, p)
}

// Listener reacts to a transition event at a lifecycle position.
// A returned error aborts the dispatch and is handed back to the caller unchanged.
type Listener interface {
	Handle(ctx context.Context, event *TransitionEvent, position Position) error
}

// ListenerFunc adapts a plain function (or a method value) to Listener.
type ListenerFunc func(ctx context.Context, event *TransitionEvent, position Position) error

func (f ListenerFunc) Handle(ctx context.Context, event *TransitionEvent, position Position) error {
	return f(ctx, event, position)
}

// Rejector returns a listener that vetoes every event it is dispatched with.
// Meant for test position rules narrowed by filters.
func Rejector() Listener {
	return ListenerFunc(func(_ context.Context, e *TransitionEvent, _ Position) error {
		e.Reject()
		return nil
	})
}

// stringSet is an unordered membership set; empty means "no constraint".
type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// Rule is a normalized listener: an action plus positive and negative filters
// on the transition name, the source state and the target state.
type Rule struct {
	action       Listener
	on           stringSet
	from         stringSet
	to           stringSet
	excludedOn   stringSet
	excludedFrom stringSet
	excludedTo   stringSet
}

func newRule(spec ListenerSpec) Rule {
	return Rule{
		action:       spec.Do,
		on:           newStringSet(spec.On),
		from:         newStringSet(spec.From),
		to:           newStringSet(spec.To),
		excludedOn:   newStringSet(spec.ExcludedOn),
		excludedFrom: newStringSet(spec.ExcludedFrom),
		excludedTo:   newStringSet(spec.ExcludedTo),
	}
}

// Action returns the listener invoked when the rule matches.
func (r Rule) Action() Listener {
	return r.action
}

// Matches reports whether the rule applies to the event. Clauses are ANDed:
// a non-empty positive filter must contain the value, a non-empty negative
// filter must not.
func (r Rule) Matches(e *TransitionEvent) bool {
	return clauseMatches(r.on, r.excludedOn, e.Transition()) &&
		clauseMatches(r.from, r.excludedFrom, e.From()) &&
		clauseMatches(r.to, r.excludedTo, e.To())
}

func clauseMatches(include, exclude stringSet, value string) bool {
	if len(include) > 0 && !include.has(value) {
		return false
	}
	if len(exclude) > 0 && exclude.has(value) {
		return false
	}
	return true
}
