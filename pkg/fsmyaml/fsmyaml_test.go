package fsmyaml_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziguss/fsm/pkg/fsm"
	"github.com/ziguss/fsm/pkg/fsmyaml"
)

type recorder struct {
	calls []string
}

func (r *recorder) Handle(_ context.Context, e *fsm.TransitionEvent, pos fsm.Position) error {
	r.calls = append(r.calls, string(pos)+":"+e.Transition())
	return nil
}

func registry(rec *recorder) fsmyaml.Registry {
	return fsmyaml.Registry{}.
		Register("reject", fsm.Rejector()).
		Register("record", rec)
}

func TestLoadFile_YAML(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	def, err := fsmyaml.LoadFile(filepath.Join("testdata", "task.yaml"), registry(rec))
	require.NoError(t, err)

	assert.Equal(t, "task", def.Graph)
	assert.Equal(t, "unassigned", def.Initial)
	assert.Equal(t, []string{"unassigned", "assigned", "done", "assigned"}, def.States)
	assert.Equal(t, []fsm.TransitionSpec{
		{Name: "take", From: []string{"unassigned"}, To: "assigned"},
		{Name: "assign", From: []string{"unassigned"}, To: "assigned"},
		{Name: "unAssign", From: []string{"assigned"}, To: "unassigned"},
		{Name: "finish", From: []string{"assigned"}, To: "done"},
		{Name: "cancel"},
	}, def.Transitions)

	require.Len(t, def.Listeners[fsm.PositionTest], 2)
	assert.Equal(t, []string{"take"}, def.Listeners[fsm.PositionTest][0].On)
	assert.NotNil(t, def.Listeners[fsm.PositionTest][0].Do)
	assert.Same(t, rec, def.Listeners[fsm.PositionTest][1].Do)
	assert.Empty(t, def.Listeners[fsm.PositionTest][1].On)
	assert.Equal(t, []string{"assigned"}, def.Listeners[fsm.PositionBefore][0].To)
	assert.Equal(t, []string{"assigned"}, def.Listeners[fsm.PositionAfter][0].ExcludedTo)
}

func TestLoadFile_DrivesMachine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &recorder{}
	def, err := fsmyaml.LoadFile(filepath.Join("testdata", "task.yaml"), registry(rec))
	require.NoError(t, err)

	sm, err := fsm.New(fsm.NewObject(def.Initial), def)
	require.NoError(t, err)

	assert.Equal(t, []string{"unassigned", "assigned", "done"}, sm.Config().States())
	assert.Equal(t, []string{"take", "assign", "unAssign", "finish"}, sm.Config().Transitions())
	assert.Equal(t, []string{"done"}, sm.FinalStates())

	enabled, err := sm.EnabledTransitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"assign"}, enabled)

	rec.calls = nil
	require.NoError(t, sm.Apply(ctx, "assign"))
	assert.Equal(t, []string{"test:assign", "before:assign"}, rec.calls)

	rec.calls = nil
	require.NoError(t, sm.Apply(ctx, "finish"))
	assert.Equal(t, []string{"test:finish", "after:finish"}, rec.calls)
	assert.True(t, sm.IsFinal())
}

func TestLoadFile_JSON(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	def, err := fsmyaml.LoadFile(filepath.Join("testdata", "task.json"), registry(rec))
	require.NoError(t, err)

	cfg, err := fsm.NewConfig(def)
	require.NoError(t, err)
	assert.Equal(t, []string{"finish", "assign", "unAssign"}, cfg.Transitions(), "document order is kept")

	tr, ok := cfg.Transition("finish")
	require.True(t, ok)
	assert.Equal(t, []string{"assigned"}, tr.From)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := fsmyaml.LoadFile(filepath.Join("testdata", "nope.yaml"), nil)
	assert.ErrorIs(t, err, fsmyaml.ErrReadFile)
}

func TestParse_MissingKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"graph", "states: []\ntransitions: {}\n", "missing state machine config graph"},
		{"states", "graph: g\ntransitions: {}\n", "missing state machine config states"},
		{"transitions", "graph: g\nstates: []\n", "missing state machine config transitions"},
		{"null transitions", "graph: g\nstates: []\ntransitions: ~\n", "missing state machine config transitions"},
		{"listener without do", "graph: g\nstates: []\ntransitions: {}\nlisteners:\n  test:\n    - on: x\n", "missing listener config do"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def, err := fsmyaml.Parse([]byte(tt.doc), nil)
			require.NoError(t, err)

			_, err = fsm.NewConfig(def)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestParse_EmptyCollectionsArePresent(t *testing.T) {
	t.Parallel()

	def, err := fsmyaml.Parse([]byte("graph: g\nstates: []\ntransitions: {}\n"), nil)
	require.NoError(t, err)
	assert.NotNil(t, def.States)
	assert.NotNil(t, def.Transitions)

	_, err = fsm.NewConfig(def)
	assert.NoError(t, err)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty document", "", fsmyaml.ErrEmptyDefinition},
		{"invalid yaml", "graph: [", fsmyaml.ErrParse},
		{"unknown key", "graph: g\nstate: []\ntransitions: {}\n", fsmyaml.ErrParse},
		{"transitions as list", "graph: g\nstates: []\ntransitions: [a, b]\n", fsmyaml.ErrParse},
		{"from as mapping", "graph: g\nstates: []\ntransitions:\n  go: {from: {a: b}, to: c}\n", fsmyaml.ErrParse},
		{"listener as list", "graph: g\nstates: []\ntransitions: {}\nlisteners:\n  test:\n    - [a]\n", fsmyaml.ErrParse},
		{"unknown transition field", "graph: g\nstates: [a, b]\ntransitions:\n  go: {from: a, to: b, guard: x}\n", fsmyaml.ErrParse},
		{"unknown listener filter", "graph: g\nstates: [a, b]\ntransitions:\n  go: {from: a, to: b}\nlisteners:\n  test:\n    - {exclude_on: go, do: reject}\n", fsmyaml.ErrParse},
		{"unknown listener", "graph: g\nstates: []\ntransitions: {}\nlisteners:\n  after:\n    - ghost\n", fsmyaml.ErrUnknownListener},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := fsmyaml.Registry{}.Register("reject", fsm.Rejector())
			_, err := fsmyaml.Parse([]byte(tt.doc), reg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_UnknownFieldReportsLine(t *testing.T) {
	t.Parallel()

	doc := "graph: g\nstates: [a, b]\ntransitions:\n  go: {from: a, to: b}\nlisteners:\n  test:\n    - do: reject\n      exclude_on: go\n"
	_, err := fsmyaml.Parse([]byte(doc), fsmyaml.Registry{}.Register("reject", fsm.Rejector()))
	require.ErrorIs(t, err, fsmyaml.ErrParse)
	assert.Contains(t, err.Error(), "line 8: field exclude_on not allowed")
}

func TestParse_UnknownPositionRejectedByConfig(t *testing.T) {
	t.Parallel()

	reg := fsmyaml.Registry{}.Register("reject", fsm.Rejector())
	def, err := fsmyaml.Parse([]byte("graph: g\nstates: [a]\ntransitions: {}\nlisteners:\n  during: [reject]\n"), reg)
	require.NoError(t, err)

	_, err = fsm.NewConfig(def)
	assert.ErrorIs(t, err, fsm.ErrConfig)
}
