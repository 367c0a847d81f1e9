package fsmhttp

import (
	"sync"

	"github.com/google/uuid"
)

// Task is the stateful object served over HTTP. Its state is only touched
// inside Store.With, which serializes access per task.
type Task struct {
	id     string
	state  string
	writes uint64
	mu     sync.Mutex
}

func (t *Task) ID() string {
	return t.id
}

func (t *Task) FiniteState() string {
	return t.state
}

func (t *Task) SetFiniteState(state string) {
	t.state = state
	t.writes++
}

// Store keeps tasks in memory.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewStore() *Store {
	return &Store{tasks: make(map[string]*Task)}
}

// Create adds a task positioned at initial and returns its id.
func (s *Store) Create(initial string) string {
	t := &Task{
		id:    uuid.New().String(),
		state: initial,
	}

	s.mu.Lock()
	s.tasks[t.id] = t
	s.mu.Unlock()

	return t.id
}

// With runs fn while holding the task's lock. It returns ErrTaskNotFound for
// unknown ids and fn's error otherwise.
func (s *Store) With(id string, fn func(t *Task) error) error {
	s.mu.RLock()
	t, ok := s.tasks[id]
	s.mu.RUnlock()
	if !ok {
		return ErrTaskNotFound
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t)
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
