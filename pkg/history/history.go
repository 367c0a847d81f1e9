package history

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziguss/fsm/pkg/fsm"
)

// DefaultCapacity is the number of entries a Recorder keeps when none is given.
const DefaultCapacity = 1024

// Identifier is implemented by stateful objects that can be told apart in
// the history.
type Identifier interface {
	ID() string
}

// Entry is one applied transition.
type Entry struct {
	ID         string    `json:"id"`
	ObjectID   string    `json:"object_id,omitempty"`
	Graph      string    `json:"graph"`
	Transition string    `json:"transition"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	At         time.Time `json:"at"`
}

// Recorder is an fsm.Listener that appends an Entry for every event it
// receives at the after position; other positions are ignored. It is safe
// for concurrent use, so one Recorder can sit in a Config shared by many
// machines. Once full, the oldest entries are dropped.
type Recorder struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithCapacity bounds the number of retained entries. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle implements fsm.Listener.
func (r *Recorder) Handle(_ context.Context, e *fsm.TransitionEvent, pos fsm.Position) error {
	if pos != fsm.PositionAfter {
		return nil
	}

	entry := Entry{
		ID:         uuid.New().String(),
		Graph:      e.Machine().Graph(),
		Transition: e.Transition(),
		From:       e.From(),
		To:         e.To(),
		At:         r.now(),
	}
	if obj, ok := e.Machine().Object().(Identifier); ok {
		entry.ObjectID = obj.ID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= r.capacity {
		r.entries = slices.Delete(r.entries, 0, len(r.entries)-r.capacity+1)
	}
	r.entries = append(r.entries, entry)
	return nil
}

// Entries returns the retained entries for objectID, oldest first.
// An empty objectID returns every entry.
func (r *Recorder) Entries(objectID string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if objectID == "" {
		return slices.Clone(r.entries)
	}
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.ObjectID == objectID {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of retained entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
