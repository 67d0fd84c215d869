// Package memory provides the in-process response cache used by the search
// service. Entries expire lazily on read; there is no background sweep.
package memory

import (
	"sync"
	"time"

	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ResponseCache = (*Cache)(nil)

// entry is one cached payload with its expiry bookkeeping.
type entry struct {
	value     []byte
	timestamp time.Time
	ttl       time.Duration
}

// Cache is an in-memory implementation of driven.ResponseCache. It is
// unbounded in count for the session's lifetime; growth is bounded in
// practice by the set of unique query strings.
type Cache struct {
	clock driven.Clock

	mu      sync.Mutex
	entries map[string]entry
}

// NewCache creates a cache with the given clock. A nil clock falls back to
// the system clock.
func NewCache(clock driven.Clock) *Cache {
	if clock == nil {
		clock = driven.SystemClock()
	}
	return &Cache{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key. An entry older than its TTL is
// deleted and reported as a miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(e.timestamp) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. A non-positive ttl falls back to
// driven.DefaultCacheTTL.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = driven.DefaultCacheTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		timestamp: c.clock.Now(),
		ttl:       ttl,
	}
}

// Invalidate removes a single entry.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of live and expired entries still held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
