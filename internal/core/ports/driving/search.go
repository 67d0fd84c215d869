package driving

import (
	"context"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// SearchAll searches every content domain and returns scored,
	// sorted results. Rejects blank queries with domain.ErrEmptyQuery.
	SearchAll(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// SearchByType searches a single content domain.
	SearchByType(ctx context.Context, query string, d domain.ContentDomain, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
