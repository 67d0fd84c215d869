package domain

// SearchResponse aggregates scored results across all content domains.
// Each slice is sorted descending by RelevanceScore; ties preserve the order
// the backend returned.
type SearchResponse struct {
	Clubs   []SearchResult
	Threads []SearchResult
	Events  []SearchResult
	Media   []SearchResult

	// TotalResults is the exact sum of the four slice lengths.
	TotalResults int
}

// ByDomain returns the result slice for a single domain.
func (r *SearchResponse) ByDomain(d ContentDomain) []SearchResult {
	switch d {
	case DomainClub:
		return r.Clubs
	case DomainThread:
		return r.Threads
	case DomainEvent:
		return r.Events
	case DomainMedia:
		return r.Media
	default:
		return nil
	}
}

// Truncate returns a copy with each domain slice capped at max entries.
// TotalResults is recomputed from the truncated slices.
func (r *SearchResponse) Truncate(max int) *SearchResponse {
	capped := &SearchResponse{
		Clubs:   truncateResults(r.Clubs, max),
		Threads: truncateResults(r.Threads, max),
		Events:  truncateResults(r.Events, max),
		Media:   truncateResults(r.Media, max),
	}
	capped.TotalResults = len(capped.Clubs) + len(capped.Threads) + len(capped.Events) + len(capped.Media)
	return capped
}

// Empty reports whether no domain has any results.
func (r *SearchResponse) Empty() bool {
	return r.TotalResults == 0
}

func truncateResults(results []SearchResult, max int) []SearchResult {
	if max < 0 {
		max = 0
	}
	if len(results) <= max {
		return results
	}
	return results[:max]
}
