package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

var scoreNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestScore_ExactTitleMatch(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainClub,
		Title:  "Chess Club",
	}

	assert.InDelta(t, 10.0, Score(r, "chess club", scoreNow), 0.001)
}

func TestScore_SubstringTitleMatch(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainClub,
		Title:  "Chess Club of Amsterdam",
	}

	assert.InDelta(t, 7.0, Score(r, "chess", scoreNow), 0.001)
}

func TestScore_ExactAndSubstringAreMutuallyExclusive(t *testing.T) {
	// An exact title match must not also collect the substring bonus.
	r := domain.SearchResult{
		Domain: domain.DomainMedia,
		Title:  "dune",
	}

	assert.InDelta(t, 10.0, Score(r, "Dune", scoreNow), 0.001)
}

func TestScore_DescriptionMatchAddsOnTop(t *testing.T) {
	r := domain.SearchResult{
		Domain:      domain.DomainClub,
		Title:       "Chess Club",
		Description: "Weekly chess club meetings",
	}

	assert.InDelta(t, 13.0, Score(r, "chess club", scoreNow), 0.001)
}

func TestScore_CaseInsensitive(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainClub,
		Title:  "CHESS Club",
	}

	assert.InDelta(t, 10.0, Score(r, "  Chess cluB ", scoreNow), 0.001)
}

func TestScore_ClubSignals(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainClub,
		Title:  "Chess Club",
		Club: &domain.ClubDetails{
			IsMember:    true,
			MemberCount: 150,
		},
	}

	// 10 (exact) + 5 (member) + 1.5 (150/100)
	assert.InDelta(t, 16.5, Score(r, "chess club", scoreNow), 0.001)
}

func TestScore_ClubMemberCountIsCapped(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainClub,
		Title:  "Chess Club",
		Club: &domain.ClubDetails{
			MemberCount: 100000,
		},
	}

	// 10 (exact) + 3 (capped member count)
	assert.InDelta(t, 13.0, Score(r, "chess club", scoreNow), 0.001)
}

func TestScore_ThreadSignals(t *testing.T) {
	r := domain.SearchResult{
		Domain:    domain.DomainThread,
		Title:     "AI ethics",
		CreatedAt: scoreNow.Add(-2 * 24 * time.Hour),
		Thread: &domain.ThreadDetails{
			ViewCount:    100,
			CommentCount: 20,
			IsPinned:     true,
		},
	}

	// 10 (exact) + 2 (views 100/50) + 2 (comments 20/10) + 2 (pinned) + 3 (< 7 days)
	assert.InDelta(t, 19.0, Score(r, "ai ethics", scoreNow), 0.001)
}

func TestScore_ThreadRecencyTiers(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"fresh", 3 * 24 * time.Hour, 13.0},
		{"recent", 20 * 24 * time.Hour, 11.0},
		{"old", 60 * 24 * time.Hour, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.SearchResult{
				Domain:    domain.DomainThread,
				Title:     "ai ethics",
				CreatedAt: scoreNow.Add(-tt.age),
				Thread:    &domain.ThreadDetails{},
			}
			assert.InDelta(t, tt.want, Score(r, "ai ethics", scoreNow), 0.001)
		})
	}
}

func TestScore_EventSignals(t *testing.T) {
	r := domain.SearchResult{
		Domain:      domain.DomainEvent,
		Title:       "Spring Picnic",
		Description: "Annual picnic in the park",
		Event: &domain.EventDetails{
			Date:                scoreNow.Add(48 * time.Hour),
			Capacity:            100,
			CurrentParticipants: 5,
		},
	}

	// 10 (exact) + 3 (description) + 5 (upcoming) + 0.5 (5/10)
	assert.InDelta(t, 18.5, Score(r, "spring picnic", scoreNow), 0.001)
}

func TestScore_PastEventGetsNoUpcomingBonus(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainEvent,
		Title:  "Spring Picnic",
		Event: &domain.EventDetails{
			Date: scoreNow.Add(-48 * time.Hour),
		},
	}

	assert.InDelta(t, 10.0, Score(r, "spring picnic", scoreNow), 0.001)
}

func TestScore_MediaRecentRelease(t *testing.T) {
	recent := domain.SearchResult{
		Domain: domain.DomainMedia,
		Title:  "Dune",
		Media:  &domain.MediaDetails{ReleaseYear: 2024},
	}
	old := domain.SearchResult{
		Domain: domain.DomainMedia,
		Title:  "Dune",
		Media:  &domain.MediaDetails{ReleaseYear: 1984},
	}

	assert.InDelta(t, 12.0, Score(recent, "dune", scoreNow), 0.001)
	assert.InDelta(t, 10.0, Score(old, "dune", scoreNow), 0.001)
}

func TestScore_NoMatchNoDetails(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainClub,
		Title:  "Pottery",
	}

	assert.Zero(t, Score(r, "chess", scoreNow))
}

func TestScore_Deterministic(t *testing.T) {
	r := domain.SearchResult{
		Domain:    domain.DomainThread,
		Title:     "Chess openings",
		CreatedAt: scoreNow.Add(-5 * 24 * time.Hour),
		Thread:    &domain.ThreadDetails{ViewCount: 73, CommentCount: 7},
	}

	first := Score(r, "chess", scoreNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(r, "chess", scoreNow))
	}
}

func TestScore_RoundedToOneDecimal(t *testing.T) {
	r := domain.SearchResult{
		Domain: domain.DomainThread,
		Title:  "chess",
		Thread: &domain.ThreadDetails{ViewCount: 33}, // 33/50 = 0.66
	}

	// Thread is old, so only exact + views: 10.66 rounds to 10.7.
	r.CreatedAt = scoreNow.Add(-90 * 24 * time.Hour)
	assert.InDelta(t, 10.7, Score(r, "chess", scoreNow), 0.001)
}

func TestScoreAndSort_DescendingAndStable(t *testing.T) {
	results := []domain.SearchResult{
		{ID: "a", Domain: domain.DomainClub, Title: "Pottery"},
		{ID: "b", Domain: domain.DomainClub, Title: "Chess Club"},
		{ID: "c", Domain: domain.DomainClub, Title: "Chess Club of Amsterdam"},
		{ID: "d", Domain: domain.DomainClub, Title: "Pottery"},
	}

	sorted := ScoreAndSort(results, "chess club", scoreNow)

	require.Len(t, sorted, 4)
	assert.Equal(t, "b", sorted[0].ID)
	assert.Equal(t, "c", sorted[1].ID)
	// Equal scores keep backend order.
	assert.Equal(t, "a", sorted[2].ID)
	assert.Equal(t, "d", sorted[3].ID)

	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].RelevanceScore, sorted[i].RelevanceScore)
	}
}

func TestScoreAndSort_DoesNotMutateInput(t *testing.T) {
	results := []domain.SearchResult{
		{ID: "a", Domain: domain.DomainClub, Title: "Chess Club"},
	}

	_ = ScoreAndSort(results, "chess club", scoreNow)

	assert.Zero(t, results[0].RelevanceScore)
}
