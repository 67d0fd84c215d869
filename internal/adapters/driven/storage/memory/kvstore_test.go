package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	s := NewKVStore()

	_, ok := s.Get("session")
	assert.False(t, ok)

	require.NoError(t, s.Set("session", `{"query":"chess"}`))
	v, ok := s.Get("session")
	require.True(t, ok)
	assert.Equal(t, `{"query":"chess"}`, v)

	require.NoError(t, s.Set("session", "updated"))
	v, _ = s.Get("session")
	assert.Equal(t, "updated", v)

	require.NoError(t, s.Delete("session"))
	_, ok = s.Get("session")
	assert.False(t, ok)
}

func TestKVStore_DeleteMissingKey(t *testing.T) {
	s := NewKVStore()

	assert.NoError(t, s.Delete("nope"))
}

func TestHistoryStore_SaveLoad(t *testing.T) {
	s := NewHistoryStore()
	ctx := context.Background()

	items, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	saved := []domain.HistoryItem{
		{ID: "h1", Query: "chess", ResultCount: 4, Timestamp: time.Now()},
		{ID: "h2", Query: "hiking", ResultCount: 1, Timestamp: time.Now()},
	}
	require.NoError(t, s.Save(ctx, saved))

	items, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "h1", items[0].ID)
}

func TestHistoryStore_LoadReturnsCopy(t *testing.T) {
	s := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []domain.HistoryItem{{ID: "h1", Query: "chess"}}))

	items, err := s.Load(ctx)
	require.NoError(t, err)
	items[0].Query = "mutated"

	fresh, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chess", fresh[0].Query)
}

func TestHistoryStore_Close(t *testing.T) {
	s := NewHistoryStore()
	assert.NoError(t, s.Close())
}
