package fsm

import (
	"slices"
)

// Definition is the raw, declarative description of a graph as supplied by
// callers or decoded from a file. NewConfig turns it into a validated Config.
//
// A nil States or Transitions slice means the key was not supplied at all;
// an empty non-nil slice is a legal (if useless) value.
type Definition struct {
	Graph       string
	States      []string
	Initial     string // informational: the state a caller should seed new objects with
	Transitions []TransitionSpec
	Listeners   map[Position][]ListenerSpec
}

// TransitionSpec is one raw entry of the transition table.
// An entry with neither From nor To is a placeholder and is dropped.
type TransitionSpec struct {
	Name string
	From []string
	To   string
}

// ListenerSpec is one raw listener rule. Empty filters impose no constraint,
// so ListenerSpec{Do: l} is a catch-all listener.
type ListenerSpec struct {
	Do           Listener
	On           []string
	From         []string
	To           []string
	ExcludedOn   []string
	ExcludedFrom []string
	ExcludedTo   []string
}

// Transition is a normalized transition table entry.
type Transition struct {
	Name string   `json:"name"`
	From []string `json:"from"`
	To   string   `json:"to"`
}

// CanStartFrom reports whether state is one of the transition's source states.
func (t Transition) CanStartFrom(state string) bool {
	return slices.Contains(t.From, state)
}

// Config is the normalized, immutable graph a StateMachine runs on.
// It is safe to share a single Config between many machines.
type Config struct {
	graph       string
	initial     string
	states      []string
	order       []string
	transitions map[string]Transition
	listeners   map[Position][]Rule
}

// NewConfig validates and normalizes a Definition.
func NewConfig(def Definition) (*Config, error) {
	if def.Graph == "" {
		return nil, NewErrMissingConfig("graph")
	}
	if def.States == nil {
		return nil, NewErrMissingConfig("states")
	}
	if def.Transitions == nil {
		return nil, NewErrMissingConfig("transitions")
	}

	cfg := &Config{
		graph:       def.Graph,
		initial:     def.Initial,
		states:      unique(def.States),
		order:       make([]string, 0, len(def.Transitions)),
		transitions: make(map[string]Transition, len(def.Transitions)),
		listeners:   make(map[Position][]Rule, len(def.Listeners)),
	}

	for i, t := range def.Transitions {
		if len(t.From) == 0 && t.To == "" {
			continue
		}
		if t.Name == "" {
			return nil, NewErrInvalidConfig("transitions", "transition[%d] has no name", i)
		}
		if _, exists := cfg.transitions[t.Name]; exists {
			return nil, NewErrInvalidConfig("transitions", "duplicate transition %q", t.Name)
		}
		if len(t.From) == 0 {
			return nil, NewErrInvalidConfig("transitions", "missing transition config from for %q", t.Name)
		}
		if t.To == "" {
			return nil, NewErrInvalidConfig("transitions", "missing transition config to for %q", t.Name)
		}
		cfg.order = append(cfg.order, t.Name)
		cfg.transitions[t.Name] = Transition{
			Name: t.Name,
			From: unique(t.From),
			To:   t.To,
		}
	}

	for pos, specs := range def.Listeners {
		if !pos.Valid() {
			return nil, NewErrInvalidConfig("listeners", "unknown listener position %q", pos)
		}
		rules := make([]Rule, 0, len(specs))
		for _, spec := range specs {
			if spec.Do == nil {
				return nil, NewErrInvalidConfig("listeners", "missing listener config do")
			}
			rules = append(rules, newRule(spec))
		}
		if len(rules) > 0 {
			cfg.listeners[pos] = rules
		}
	}

	return cfg, nil
}

// MustConfig is like NewConfig but panics on an invalid definition.
func MustConfig(def Definition) *Config {
	cfg, err := NewConfig(def)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Graph() string {
	return c.graph
}

func (c *Config) Initial() string {
	return c.initial
}

// States returns the deduplicated states in declaration order.
func (c *Config) States() []string {
	return slices.Clone(c.states)
}

// Transitions returns the transition names in declaration order.
func (c *Config) Transitions() []string {
	return slices.Clone(c.order)
}

// Transition looks up a transition by name.
func (c *Config) Transition(name string) (Transition, bool) {
	t, ok := c.transitions[name]
	if !ok {
		return Transition{}, false
	}
	t.From = slices.Clone(t.From)
	return t, true
}

// Rules returns the listener rules registered at position, in registration order.
func (c *Config) Rules(position Position) []Rule {
	return slices.Clone(c.listeners[position])
}

// FinalStates returns the states that are never the source of any transition,
// in declaration order.
func (c *Config) FinalStates() []string {
	sources := make(stringSet)
	for _, t := range c.transitions {
		for _, s := range t.From {
			sources[s] = struct{}{}
		}
	}
	final := make([]string, 0, len(c.states))
	for _, s := range c.states {
		if !sources.has(s) {
			final = append(final, s)
		}
	}
	return final
}

func unique(values []string) []string {
	seen := make(stringSet, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen.has(v) {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
