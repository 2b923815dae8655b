// Package memory provides an in-memory implementation of the durable state
// storage used for tests and ephemeral sessions.
package memory

import (
	"context"
	"maturity/pkg/domain"
	"sync"
)

// Compile-time contract assertion ensuring memory.Store adheres to the storage port.
var _ domain.StateStorage = (*Store)(nil)

// Store keeps payloads in process memory. Failures can be injected to
// exercise the unavailable-storage paths of callers.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: make(map[string][]byte)}
}

// Load returns a copy of the payload stored under key.
func (s *Store) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	payload, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

// Save replaces the payload stored under key.
func (s *Store) Save(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries[key] = append([]byte(nil), payload...)
	s.saves++
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// FailLoads makes subsequent Load calls return err. A nil err restores normal behaviour.
func (s *Store) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSaves makes subsequent Save calls return err. A nil err restores normal behaviour.
func (s *Store) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves returns the number of successful saves.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
