package quiz

import (
	"sync"
)

// Listener is notified after every successful dispatch with the applied
// action and a copy of the resulting state. Listeners run with the store
// locked and must not call Dispatch.
type Listener func(a Action, s State)

// Store owns the quiz state. Dispatch is the only way to change it, and
// concurrent dispatches are applied one at a time in arrival order.
type Store struct {
	mu        sync.Mutex
	state     State
	version   uint64
	listeners []Listener
}

// NewStore returns a store holding NewState().
func NewStore() *Store {
	return &Store{state: NewState()}
}

// Dispatch applies a. On error the state is unchanged and no listener runs.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return err
	}
	s.state = next
	s.version++

	for _, l := range s.listeners {
		l(a, next.Clone())
	}
	return nil
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Version counts successful dispatches.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers l for all future dispatches.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
