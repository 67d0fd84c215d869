// Package memory provides in-memory storage adapters: the session-scoped
// key-value slot and a history store used as a test fixture and fallback.
package memory

import (
	"sync"

	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KVStore = (*KVStore)(nil)

// KVStore is the session-scoped key-value slot. It lives and dies with the
// process, which is exactly the lifetime the session slot wants.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKVStore creates an empty in-memory key-value store.
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *KVStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *KVStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key.
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
