package driving

import (
	"context"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// HistoryService manages the bounded, deduplicated search history.
type HistoryService interface {
	// List returns history items, most recent first.
	List(ctx context.Context) ([]domain.HistoryItem, error)

	// Add records a search. An existing entry with the same query
	// (case-insensitive) moves to the front instead of duplicating; the
	// list is truncated to domain.MaxHistoryItems.
	Add(ctx context.Context, query string, resultCount int) (domain.HistoryItem, error)

	// Remove deletes one entry by ID.
	Remove(ctx context.Context, id string) error

	// Clear deletes all entries.
	Clear(ctx context.Context) error
}
