package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/core/ports/driving"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService maintains the bounded, deduplicated search history on top
// of a persistence port. The store holds whole lists; ordering, the
// case-insensitive dedup rule and the length cap live here.
type HistoryService struct {
	store driven.HistoryStore
	clock driven.Clock
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore, clock driven.Clock) *HistoryService {
	if clock == nil {
		clock = driven.SystemClock()
	}
	return &HistoryService{store: store, clock: clock}
}

// List returns history items, most recent first.
func (h *HistoryService) List(ctx context.Context) ([]domain.HistoryItem, error) {
	items, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

// Add records a search. A prior entry with the same query (case-insensitive)
// is replaced: the newest occurrence wins the front position. The list is
// truncated to domain.MaxHistoryItems.
func (h *HistoryService) Add(ctx context.Context, query string, resultCount int) (domain.HistoryItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.HistoryItem{}, domain.ErrEmptyQuery
	}

	existing, err := h.store.Load(ctx)
	if err != nil {
		return domain.HistoryItem{}, fmt.Errorf("load history: %w", err)
	}

	item := domain.HistoryItem{
		ID:          uuid.NewString(),
		Query:       query,
		Timestamp:   h.clock.Now(),
		ResultCount: resultCount,
	}

	items := make([]domain.HistoryItem, 0, len(existing)+1)
	items = append(items, item)
	for _, e := range existing {
		if e.SameQuery(query) {
			continue
		}
		items = append(items, e)
	}
	if len(items) > domain.MaxHistoryItems {
		items = items[:domain.MaxHistoryItems]
	}

	if err := h.store.Save(ctx, items); err != nil {
		return domain.HistoryItem{}, fmt.Errorf("save history: %w", err)
	}

	logger.Debug("History: recorded %q (%d results), %d items total", query, resultCount, len(items))
	return item, nil
}

// Remove deletes one entry by ID. Removing an unknown ID is a no-op.
func (h *HistoryService) Remove(ctx context.Context, id string) error {
	existing, err := h.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	items := make([]domain.HistoryItem, 0, len(existing))
	for _, e := range existing {
		if e.ID == id {
			continue
		}
		items = append(items, e)
	}

	if len(items) == len(existing) {
		return nil
	}

	if err := h.store.Save(ctx, items); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Clear deletes all entries.
func (h *HistoryService) Clear(ctx context.Context) error {
	if err := h.store.Save(ctx, []domain.HistoryItem{}); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
