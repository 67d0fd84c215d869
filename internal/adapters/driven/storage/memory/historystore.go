package memory

import (
	"context"
	"sync"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu    sync.RWMutex
	items []domain.HistoryItem
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Load returns all persisted history items.
func (s *HistoryStore) Load(_ context.Context) ([]domain.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.HistoryItem(nil), s.items...), nil
}

// Save replaces the persisted list.
func (s *HistoryStore) Save(_ context.Context, items []domain.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]domain.HistoryItem(nil), items...)
	return nil
}

// Close releases resources.
func (s *HistoryStore) Close() error {
	return nil
}
