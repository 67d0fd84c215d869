package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCache_SetAndGet(t *testing.T) {
	cache := NewCache(newFakeClock())

	cache.Set("k", []byte("v"), time.Minute)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestCache_MissingKey(t *testing.T) {
	cache := NewCache(newFakeClock())

	_, ok := cache.Get("nope")
	assert.False(t, ok)
}

func TestCache_EntryExpiresLazily(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(clock)

	cache.Set("k", []byte("v"), time.Minute)
	require.Equal(t, 1, cache.Len())

	clock.Advance(time.Minute + time.Second)

	_, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len(), "expired entry is dropped on read")
}

func TestCache_EntryValidUntilTTL(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(clock)

	cache.Set("k", []byte("v"), time.Minute)
	clock.Advance(59 * time.Second)

	_, ok := cache.Get("k")
	assert.True(t, ok)
}

func TestCache_SetOverwritesAndResetsTTL(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(clock)

	cache.Set("k", []byte("old"), time.Minute)
	clock.Advance(50 * time.Second)
	cache.Set("k", []byte("new"), time.Minute)
	clock.Advance(50 * time.Second)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestCache_InvalidateAndClear(t *testing.T) {
	cache := NewCache(newFakeClock())

	cache.Set("a", []byte("1"), time.Minute)
	cache.Set("b", []byte("2"), time.Minute)

	cache.Invalidate("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)

	cache.Clear()
	assert.Zero(t, cache.Len())
}
