package driven

import "time"

// DefaultCacheTTL is the lifetime of a cached search payload.
const DefaultCacheTTL = 5 * time.Minute

// CacheKey builds the namespaced cache key for a domain and normalized
// query. The domain segment is "all" for cross-domain searches.
func CacheKey(scope, normalizedQuery string) string {
	return "search_" + scope + "_" + normalizedQuery
}

// ResponseCache stores raw search payloads keyed by (domain, query).
// Entries expire lazily: Get must treat any entry older than its TTL as a
// miss and delete it. No background sweep runs; the cache is unbounded in
// count for the session's lifetime.
type ResponseCache interface {
	// Get returns the cached value for key, or false on miss or expiry.
	Get(key string) ([]byte, bool)

	// Set stores value under key with the given TTL.
	// A non-positive ttl falls back to DefaultCacheTTL.
	Set(key string, value []byte, ttl time.Duration)

	// Invalidate removes a single entry.
	Invalidate(key string)

	// Clear removes all entries.
	Clear()
}
