package domain

import "net/url"

// SortOrder selects how full-search results are ordered by consumers.
type SortOrder string

const (
	// SortRelevance orders by relevance score (the default).
	SortRelevance SortOrder = "relevance"

	// SortRecent orders by creation time, newest first.
	SortRecent SortOrder = "recent"

	// SortPopular orders by popularity signals.
	SortPopular SortOrder = "popular"
)

// TypeFilter restricts a search to one content domain, or all of them.
type TypeFilter string

// TypeAll is the unrestricted type filter.
const TypeAll TypeFilter = "all"

// SearchFilters captures the user-adjustable search facets.
type SearchFilters struct {
	// Type restricts the search to one domain ("all" = no restriction).
	Type TypeFilter

	// SortBy selects the result ordering.
	SortBy SortOrder

	// TimeRange optionally restricts results by age ("day", "week",
	// "month", "year"). Empty means no restriction.
	TimeRange string
}

// DefaultFilters returns the canonical unfiltered state.
func DefaultFilters() SearchFilters {
	return SearchFilters{Type: TypeAll, SortBy: SortRelevance}
}

// Merge overlays non-zero fields of other onto f and returns the result.
func (f SearchFilters) Merge(other PartialFilters) SearchFilters {
	if other.Type != nil {
		f.Type = *other.Type
	}
	if other.SortBy != nil {
		f.SortBy = *other.SortBy
	}
	if other.TimeRange != nil {
		f.TimeRange = *other.TimeRange
	}
	return f
}

// PartialFilters expresses a partial filter update. Nil fields are left
// untouched by Merge.
type PartialFilters struct {
	Type      *TypeFilter
	SortBy    *SortOrder
	TimeRange *string
}

// EncodeQuery serializes a query and filters into shareable URL parameters.
// Default values (type=all, sort=relevance) are omitted so the URL stays
// canonical and minimal. This is a one-way export, not a source of truth.
func EncodeQuery(query string, filters SearchFilters) url.Values {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if filters.Type != "" && filters.Type != TypeAll {
		values.Set("type", string(filters.Type))
	}
	if filters.SortBy != "" && filters.SortBy != SortRelevance {
		values.Set("sort", string(filters.SortBy))
	}
	if filters.TimeRange != "" {
		values.Set("time", filters.TimeRange)
	}
	return values
}

// DecodeQuery parses shareable URL parameters back into a query and filters.
// Missing parameters fall back to defaults.
func DecodeQuery(values url.Values) (string, SearchFilters) {
	filters := DefaultFilters()
	if t := values.Get("type"); t != "" {
		filters.Type = TypeFilter(t)
	}
	if s := values.Get("sort"); s != "" {
		filters.SortBy = SortOrder(s)
	}
	filters.TimeRange = values.Get("time")
	return values.Get("q"), filters
}
