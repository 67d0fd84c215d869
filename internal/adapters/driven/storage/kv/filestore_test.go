package kv

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v"))
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	require.NoError(t, store.Delete("k"))
	_, ok = store.Get("k")
	assert.False(t, ok)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("k", "v"))

	second, err := NewFileStore(dir)
	require.NoError(t, err)

	got, ok := second.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestFileStore_CorruptedFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first.Path(), []byte("not = [valid toml"), 0600))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("k")
	assert.False(t, ok)

	// The store stays usable after the bad read.
	require.NoError(t, store.Set("k", "v"))
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestHistoryStore_RoundTrip(t *testing.T) {
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := NewHistoryStore(fileStore)
	ctx := context.Background()

	items := []domain.HistoryItem{
		{ID: "h1", Query: "chess", Timestamp: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), ResultCount: 3},
		{ID: "h2", Query: "picnic", Timestamp: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), ResultCount: 1},
	}
	require.NoError(t, store.Save(ctx, items))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestHistoryStore_EmptySlotLoadsEmpty(t *testing.T) {
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := NewHistoryStore(fileStore)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestHistoryStore_CorruptedSlotLoadsEmpty(t *testing.T) {
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fileStore.Set(driven.HistorySlotKey, "{not json"))
	store := NewHistoryStore(fileStore)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
