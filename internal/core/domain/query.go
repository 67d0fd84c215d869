package domain

import "strings"

// NormalizeQuery trims surrounding whitespace and lowercases a raw query.
// Normalized queries are the unit of cache keying and history deduplication.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsBlankQuery reports whether a raw query is empty or whitespace-only.
// Blank queries are rejected before any network dispatch.
func IsBlankQuery(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
