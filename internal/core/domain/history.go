package domain

import (
	"strings"
	"time"
)

// MaxHistoryItems caps the search history length.
const MaxHistoryItems = 10

// HistoryItem is one remembered past search.
type HistoryItem struct {
	// ID uniquely identifies this history entry.
	ID string `json:"id"`

	// Query is the search text as the user submitted it.
	Query string `json:"query"`

	// Timestamp is when the search ran.
	Timestamp time.Time `json:"timestamp"`

	// ResultCount is how many results the search returned.
	ResultCount int `json:"resultCount"`
}

// SameQuery reports whether two queries are equal for history deduplication
// purposes (case-insensitive, whitespace-trimmed).
func (h HistoryItem) SameQuery(query string) bool {
	return strings.EqualFold(strings.TrimSpace(h.Query), strings.TrimSpace(query))
}
