package fsmyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ziguss/fsm/pkg/fsm"
)

// Registry maps the listener names used in a file to their implementations.
type Registry map[string]fsm.Listener

// Register adds l under name and returns the registry for chaining.
func (r Registry) Register(name string, l fsm.Listener) Registry {
	r[name] = l
	return r
}

// file mirrors the on-disk layout. Pointers distinguish an absent key from
// an empty one so fsm.NewConfig can report missing keys.
type file struct {
	Graph       string                     `yaml:"graph"`
	States      *[]string                  `yaml:"states"`
	Initial     string                     `yaml:"initial"`
	Transitions *transitionList            `yaml:"transitions"`
	Listeners   map[string][]listenerEntry `yaml:"listeners"`
}

// Parse decodes a graph definition. YAML and JSON input are both accepted.
// Listener names are resolved against listeners; the returned Definition is
// not validated beyond that, pass it to fsm.NewConfig or fsm.New.
func Parse(data []byte, listeners Registry) (fsm.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return fsm.Definition{}, ErrEmptyDefinition
		}
		return fsm.Definition{}, errors.Join(ErrParse, err)
	}

	return f.definition(listeners)
}

// LoadFile reads and parses the definition stored at path.
func LoadFile(path string, listeners Registry) (fsm.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fsm.Definition{}, errors.Join(ErrReadFile, err)
	}
	def, err := Parse(data, listeners)
	if err != nil {
		return fsm.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func (f file) definition(listeners Registry) (fsm.Definition, error) {
	def := fsm.Definition{
		Graph:   f.Graph,
		Initial: f.Initial,
	}
	if f.States != nil {
		def.States = append([]string{}, *f.States...)
	}
	if f.Transitions != nil {
		def.Transitions = append([]fsm.TransitionSpec{}, *f.Transitions...)
	}

	if len(f.Listeners) == 0 {
		return def, nil
	}

	def.Listeners = make(map[fsm.Position][]fsm.ListenerSpec, len(f.Listeners))
	for pos, entries := range f.Listeners {
		specs := make([]fsm.ListenerSpec, 0, len(entries))
		for i, e := range entries {
			spec := fsm.ListenerSpec{
				On:           e.On,
				From:         e.From,
				To:           e.To,
				ExcludedOn:   e.ExcludedOn,
				ExcludedFrom: e.ExcludedFrom,
				ExcludedTo:   e.ExcludedTo,
			}
			if e.Name != "" {
				l, ok := listeners[e.Name]
				if !ok || l == nil {
					return fsm.Definition{}, fmt.Errorf("%w %q at listeners.%s[%d]", ErrUnknownListener, e.Name, pos, i)
				}
				spec.Do = l
			}
			specs = append(specs, spec)
		}
		def.Listeners[fsm.Position(pos)] = specs
	}
	return def, nil
}

// transitionList keeps the transition mapping in document order.
type transitionList []fsm.TransitionSpec

func (l *transitionList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: transitions must be a mapping", node.Line)
	}

	out := make(transitionList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]

		spec := fsm.TransitionSpec{Name: name}
		if !isNull(value) {
			if err := checkKeys(value, "from", "to"); err != nil {
				return fmt.Errorf("transition %q: %w", name, err)
			}
			var raw struct {
				From stringList `yaml:"from"`
				To   string     `yaml:"to"`
			}
			if err := value.Decode(&raw); err != nil {
				return fmt.Errorf("transition %q: %w", name, err)
			}
			spec.From = raw.From
			spec.To = raw.To
		}
		out = append(out, spec)
	}

	*l = out
	return nil
}

// listenerEntry is either a bare listener name or a mapping with filters.
type listenerEntry struct {
	Name         string
	On           stringList
	From         stringList
	To           stringList
	ExcludedOn   stringList
	ExcludedFrom stringList
	ExcludedTo   stringList
}

func (e *listenerEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if !isNull(node) {
			e.Name = node.Value
		}
		return nil
	case yaml.MappingNode:
		if err := checkKeys(node, "do", "action", "on", "from", "to", "excluded_on", "excluded_from", "excluded_to"); err != nil {
			return err
		}
		var raw struct {
			Do           string     `yaml:"do"`
			Action       string     `yaml:"action"`
			On           stringList `yaml:"on"`
			From         stringList `yaml:"from"`
			To           stringList `yaml:"to"`
			ExcludedOn   stringList `yaml:"excluded_on"`
			ExcludedFrom stringList `yaml:"excluded_from"`
			ExcludedTo   stringList `yaml:"excluded_to"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*e = listenerEntry{
			Name:         raw.Do,
			On:           raw.On,
			From:         raw.From,
			To:           raw.To,
			ExcludedOn:   raw.ExcludedOn,
			ExcludedFrom: raw.ExcludedFrom,
			ExcludedTo:   raw.ExcludedTo,
		}
		if e.Name == "" {
			e.Name = raw.Action
		}
		return nil
	default:
		return fmt.Errorf("line %d: listener must be a name or a mapping", node.Line)
	}
}

// stringList accepts a scalar or a sequence of scalars.
type stringList []string

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			*s = nil
			return nil
		}
		*s = stringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*s = values
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// checkKeys rejects mapping keys outside allowed. Node.Decode does not
// inherit the decoder's KnownFields setting.
func checkKeys(node *yaml.Node, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not allowed", key.Line, key.Value)
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
