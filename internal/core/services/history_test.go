package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-labs/agora-cli/internal/adapters/driven/storage/memory"
	"github.com/agora-labs/agora-cli/internal/core/domain"
)

func newTestHistory(clock *fakeClock) *HistoryService {
	return NewHistoryService(memory.NewHistoryStore(), clock)
}

func TestHistoryAdd_RecordsItem(t *testing.T) {
	clock := newFakeClock()
	svc := newTestHistory(clock)

	item, err := svc.Add(context.Background(), "chess", 12)

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "chess", item.Query)
	assert.Equal(t, 12, item.ResultCount)
	assert.Equal(t, clock.Now(), item.Timestamp)
}

func TestHistoryAdd_TrimsQuery(t *testing.T) {
	svc := newTestHistory(newFakeClock())

	item, err := svc.Add(context.Background(), "  chess  ", 1)

	require.NoError(t, err)
	assert.Equal(t, "chess", item.Query)
}

func TestHistoryAdd_RejectsBlankQuery(t *testing.T) {
	svc := newTestHistory(newFakeClock())

	_, err := svc.Add(context.Background(), "   ", 0)

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestHistoryAdd_DedupMovesToFront(t *testing.T) {
	clock := newFakeClock()
	svc := newTestHistory(clock)
	ctx := context.Background()

	_, err := svc.Add(ctx, "chess", 3)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = svc.Add(ctx, "picnic", 1)
	require.NoError(t, err)
	clock.Advance(time.Minute)

	// Same query, different case: the old entry is replaced, not duplicated.
	updated, err := svc.Add(ctx, "CHESS", 7)
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, updated.ID, items[0].ID)
	assert.Equal(t, "CHESS", items[0].Query)
	assert.Equal(t, 7, items[0].ResultCount)
	assert.Equal(t, "picnic", items[1].Query)
}

func TestHistoryAdd_CapsAtMaxItems(t *testing.T) {
	clock := newFakeClock()
	svc := newTestHistory(clock)
	ctx := context.Background()

	for i := 0; i < domain.MaxHistoryItems+5; i++ {
		_, err := svc.Add(ctx, fmt.Sprintf("query %d", i), i)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, domain.MaxHistoryItems)

	// The oldest entries were evicted.
	assert.Equal(t, fmt.Sprintf("query %d", domain.MaxHistoryItems+4), items[0].Query)
	assert.Equal(t, "query 5", items[len(items)-1].Query)
}

func TestHistoryList_MostRecentFirst(t *testing.T) {
	clock := newFakeClock()
	svc := newTestHistory(clock)
	ctx := context.Background()

	_, err := svc.Add(ctx, "oldest", 1)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = svc.Add(ctx, "newest", 2)
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "newest", items[0].Query)
	assert.Equal(t, "oldest", items[1].Query)
}

func TestHistoryRemove_DeletesOnlyTarget(t *testing.T) {
	clock := newFakeClock()
	svc := newTestHistory(clock)
	ctx := context.Background()

	keep, err := svc.Add(ctx, "keep", 1)
	require.NoError(t, err)
	clock.Advance(time.Second)
	drop, err := svc.Add(ctx, "drop", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, drop.ID))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestHistoryRemove_UnknownIDIsNoOp(t *testing.T) {
	svc := newTestHistory(newFakeClock())
	ctx := context.Background()

	_, err := svc.Add(ctx, "chess", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "no-such-id"))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestHistoryClear_EmptiesStore(t *testing.T) {
	svc := newTestHistory(newFakeClock())
	ctx := context.Background()

	_, err := svc.Add(ctx, "chess", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
