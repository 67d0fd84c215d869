package kv

import (
	"context"
	"encoding/json"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists search history as a JSON list inside a key-value
// slot. It is the fallback backing for environments without SQLite.
type HistoryStore struct {
	kv  driven.KVStore
	key string
}

// NewHistoryStore creates a history store over kv under the standard
// history slot key.
func NewHistoryStore(kv driven.KVStore) *HistoryStore {
	return &HistoryStore{kv: kv, key: driven.HistorySlotKey}
}

// Load returns all persisted history items. A missing or corrupted slot
// reads as empty, never as an error.
func (s *HistoryStore) Load(_ context.Context) ([]domain.HistoryItem, error) {
	raw, ok := s.kv.Get(s.key)
	if !ok || raw == "" {
		return []domain.HistoryItem{}, nil
	}

	var items []domain.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Ignoring corrupted history slot: %v", err)
		return []domain.HistoryItem{}, nil
	}
	return items, nil
}

// Save replaces the persisted list.
func (s *HistoryStore) Save(_ context.Context, items []domain.HistoryItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(s.key, string(raw))
}

// Close releases resources.
func (s *HistoryStore) Close() error {
	return nil
}
