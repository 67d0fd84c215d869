package driven

import (
	"context"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// HistoryStore persists the search history list. Ordering, deduplication
// and the length cap are the history service's concern; the store only
// loads and saves whole lists.
//
// Load must return an empty list (not an error) when the backing value is
// missing or corrupted.
type HistoryStore interface {
	// Load returns all persisted history items in stored order.
	Load(ctx context.Context) ([]domain.HistoryItem, error)

	// Save replaces the persisted list.
	Save(ctx context.Context, items []domain.HistoryItem) error

	// Close releases resources.
	Close() error
}
