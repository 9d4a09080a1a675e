// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import "sync"

// Store owns the content state and the single lock that serializes every
// reader and writer: the ticker, command handlers and the API.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates a store holding only the station identity.
func NewStore(station Station) *Store {
	return &Store{state: State{Station: station}}
}

// Do runs fn with exclusive access to the state. fn must not retain st
// after returning.
func (s *Store) Do(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}
