package cache

import (
	"sync"

	"taskflow/internal/models"
)

// Store owns one cache State and applies actions in dispatch order. It is the
// single mutation surface for the cache: consumers read snapshots and
// subscribe to changes, they never modify state directly.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
}

// NewStore creates a store holding the initial state.
func NewStore() *Store {
	return &Store{state: Initial()}
}

// Dispatch applies the action and notifies subscribers with the new state.
// Subscribers run outside the lock, so they may dispatch further actions.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	subs := append([]func(State){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// State returns a snapshot of the current state. The task slice is copied so
// callers cannot reach cache internals.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state
	snapshot.Tasks = append([]models.Task{}, s.state.Tasks...)
	return snapshot
}

// Subscribe registers fn to run after every dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
