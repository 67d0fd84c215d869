package driven

import (
	"context"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// SearchPayload is the raw, unscored response from the search endpoint.
// RelevanceScore fields are zero; the core recomputes them at read time.
type SearchPayload struct {
	Clubs   []domain.SearchResult `json:"clubs"`
	Threads []domain.SearchResult `json:"threads"`
	Events  []domain.SearchResult `json:"events"`
	Media   []domain.SearchResult `json:"media"`
}

// ByDomain returns the payload slice for a single domain.
func (p *SearchPayload) ByDomain(d domain.ContentDomain) []domain.SearchResult {
	switch d {
	case domain.DomainClub:
		return p.Clubs
	case domain.DomainThread:
		return p.Threads
	case domain.DomainEvent:
		return p.Events
	case domain.DomainMedia:
		return p.Media
	default:
		return nil
	}
}

// SearchGateway fetches raw search payloads from the remote backend.
// The backend's own ranking is opaque to the core; implementations must
// preserve the order the backend returned.
//
// Errors are returned already classified onto the domain taxonomy.
type SearchGateway interface {
	// FetchAll queries every content domain in one round trip.
	FetchAll(ctx context.Context, query string) (*SearchPayload, error)

	// FetchDomain queries a single content domain.
	FetchDomain(ctx context.Context, query string, d domain.ContentDomain) ([]domain.SearchResult, error)
}
