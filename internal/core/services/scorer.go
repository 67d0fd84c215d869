package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// Scoring weights. Text-match strength dominates; domain signals refine.
const (
	scoreExactTitle    = 10.0
	scoreSubstringBody = 3.0
	scoreSubstrTitle   = 7.0

	clubMemberBonus     = 5.0
	clubMemberCountCap  = 3.0
	threadViewCap       = 3.0
	threadCommentCap    = 2.0
	threadPinnedBonus   = 2.0
	threadFreshBonus    = 3.0
	threadRecentBonus   = 1.0
	eventUpcomingBonus  = 5.0
	eventTurnoutCap     = 2.0
	mediaRecentBonus    = 2.0
	mediaRecentCutoff   = 2020
	threadFreshDays     = 7
	threadRecentDays    = 30
	clubMemberDivisor   = 100.0
	threadViewDivisor   = 50.0
	threadCommentDiv    = 10.0
	eventTurnoutDivisor = 10.0
)

// Score computes the relevance score for one result given the query.
// It is deterministic and side-effect free; now supplies the evaluation
// time for thread recency and future-event bonuses. The result is
// non-negative and rounded to one decimal place.
func Score(result domain.SearchResult, query string, now time.Time) float64 {
	q := domain.NormalizeQuery(query)
	title := strings.ToLower(result.Title)
	description := strings.ToLower(result.Description)

	var score float64

	// Text match strength. Exact and substring title matches are
	// mutually exclusive; a description match adds on top.
	switch {
	case title == q:
		score += scoreExactTitle
	case q != "" && strings.Contains(title, q):
		score += scoreSubstrTitle
	}
	if q != "" && strings.Contains(description, q) {
		score += scoreSubstringBody
	}

	switch result.Domain {
	case domain.DomainClub:
		if result.Club != nil {
			if result.Club.IsMember {
				score += clubMemberBonus
			}
			score += capped(float64(result.Club.MemberCount)/clubMemberDivisor, clubMemberCountCap)
		}

	case domain.DomainThread:
		if result.Thread != nil {
			score += capped(float64(result.Thread.ViewCount)/threadViewDivisor, threadViewCap)
			score += capped(float64(result.Thread.CommentCount)/threadCommentDiv, threadCommentCap)
			if result.Thread.IsPinned {
				score += threadPinnedBonus
			}
			score += recencyBonus(result.CreatedAt, now)
		}

	case domain.DomainEvent:
		if result.Event != nil {
			if result.Event.Date.After(now) {
				score += eventUpcomingBonus
			}
			score += capped(float64(result.Event.CurrentParticipants)/eventTurnoutDivisor, eventTurnoutCap)
		}

	case domain.DomainMedia:
		if result.Media != nil && result.Media.ReleaseYear > mediaRecentCutoff {
			score += mediaRecentBonus
		}
	}

	return roundScore(score)
}

// ScoreAndSort scores every result against the query and returns a new
// slice sorted descending by score. The sort is stable: ties keep the
// order the backend returned.
func ScoreAndSort(results []domain.SearchResult, query string, now time.Time) []domain.SearchResult {
	scored := make([]domain.SearchResult, len(results))
	for i, r := range results {
		r.RelevanceScore = Score(r, query, now)
		scored[i] = r
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return scored
}

// recencyBonus rewards young threads by whole days of age.
func recencyBonus(createdAt, now time.Time) float64 {
	ageDays := int(now.Sub(createdAt).Hours() / 24)
	switch {
	case ageDays < threadFreshDays:
		return threadFreshBonus
	case ageDays < threadRecentDays:
		return threadRecentBonus
	default:
		return 0
	}
}

func capped(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	if value < 0 {
		return 0
	}
	return value
}

func roundScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	return math.Round(score*10) / 10
}
