package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agora-labs/agora-cli/internal/adapters/driven/config/file"
	storagemem "github.com/agora-labs/agora-cli/internal/adapters/driven/storage/memory"
	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/services"
)

// stubSearch implements driving.SearchService with canned results.
type stubSearch struct {
	resp     *domain.SearchResponse
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (s *stubSearch) SearchAll(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	s.lastOpts = opts
	if domain.IsBlankQuery(query) {
		return nil, domain.ErrEmptyQuery
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.resp == nil {
		return &domain.SearchResponse{}, nil
	}
	return s.resp, nil
}

func (s *stubSearch) SearchByType(_ context.Context, query string, _ domain.ContentDomain, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	s.lastOpts = opts
	if domain.IsBlankQuery(query) {
		return nil, domain.ErrEmptyQuery
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func stubSearchResponse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Clubs: []domain.SearchResult{
			{ID: "c1", Domain: domain.DomainClub, Title: "Chess Club", Description: "Weekly games",
				RelevanceScore: 10, Club: &domain.ClubDetails{MemberCount: 42}},
		},
		Threads: []domain.SearchResult{
			{ID: "t1", Domain: domain.DomainThread, Title: "Chess openings",
				RelevanceScore: 7, Thread: &domain.ThreadDetails{ViewCount: 120, CommentCount: 8}},
		},
		TotalResults: 2,
	}
}

// setupTestServices wires stub services into the package-level slots and
// returns a cleanup that restores the pristine state.
func setupTestServices(t *testing.T, search *stubSearch) func() {
	t.Helper()

	store, err := file.NewStore(t.TempDir())
	require.NoError(t, err)

	backend := storagemem.NewHistoryStore()
	history := services.NewHistoryService(backend, nil)

	configStore = store
	appConfig = store.Get()
	searchService = search
	historyService = history
	historyBackend = backend
	searchStore = services.NewSearchStore(search, history, storagemem.NewKVStore(), nil)

	return func() {
		configStore = nil
		searchService = nil
		historyService = nil
		historyBackend = nil
		searchStore = nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)

		searchType = "all"
		searchSort = ""
		searchTime = ""
		searchLimit = 0
		searchJSON = false
		searchNoCache = false
		searchShare = false
		searchFromURL = ""
		searchDomains = nil
	}
}
