package rest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

// Wire shapes for the backend's raw search payloads. Server-side scores,
// if any, are deliberately not decoded: relevance is recomputed locally.

type wirePayload struct {
	Clubs   []wireClub   `json:"clubs"`
	Threads []wireThread `json:"threads"`
	Events  []wireEvent  `json:"events"`
	Media   []wireMedia  `json:"media"`
}

type wireClub struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	IsMember    bool      `json:"isMember"`
	MemberCount int       `json:"memberCount"`
}

type wireThread struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	ViewCount    int       `json:"viewCount"`
	CommentCount int       `json:"commentCount"`
	IsPinned     bool      `json:"isPinned"`
}

type wireEvent struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Date                time.Time `json:"date"`
	Capacity            int       `json:"capacity"`
	CurrentParticipants int       `json:"currentParticipants"`
	CreatedAt           time.Time `json:"createdAt"`
}

type wireMedia struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	ReleaseYear int       `json:"releaseYear"`
	Genre       string    `json:"genre"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (w *wirePayload) toPayload() *driven.SearchPayload {
	return &driven.SearchPayload{
		Clubs:   convertClubs(w.Clubs),
		Threads: convertThreads(w.Threads),
		Events:  convertEvents(w.Events),
		Media:   convertMedia(w.Media),
	}
}

// decodeDomainResults decodes a single domain's raw array, preserving the
// order the backend returned.
func decodeDomainResults(body []byte, d domain.ContentDomain) ([]domain.SearchResult, error) {
	switch d {
	case domain.DomainClub:
		var items []wireClub
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, decodeErr(d, err)
		}
		return convertClubs(items), nil
	case domain.DomainThread:
		var items []wireThread
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, decodeErr(d, err)
		}
		return convertThreads(items), nil
	case domain.DomainEvent:
		var items []wireEvent
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, decodeErr(d, err)
		}
		return convertEvents(items), nil
	case domain.DomainMedia:
		var items []wireMedia
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, decodeErr(d, err)
		}
		return convertMedia(items), nil
	default:
		return nil, fmt.Errorf("%w: unknown domain %q", domain.ErrInvalidQuery, d)
	}
}

func decodeErr(d domain.ContentDomain, err error) error {
	return fmt.Errorf("%w: decoding %s payload: %v", domain.ErrUnknown, d, err)
}

func convertClubs(items []wireClub) []domain.SearchResult {
	results := make([]domain.SearchResult, len(items))
	for i, c := range items {
		results[i] = domain.SearchResult{
			ID:          c.ID,
			Domain:      domain.DomainClub,
			Title:       c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
			Club: &domain.ClubDetails{
				IsMember:    c.IsMember,
				MemberCount: c.MemberCount,
			},
		}
	}
	return results
}

func convertThreads(items []wireThread) []domain.SearchResult {
	results := make([]domain.SearchResult, len(items))
	for i, t := range items {
		results[i] = domain.SearchResult{
			ID:          t.ID,
			Domain:      domain.DomainThread,
			Title:       t.Title,
			Description: t.Content,
			CreatedAt:   t.CreatedAt,
			Thread: &domain.ThreadDetails{
				ViewCount:    t.ViewCount,
				CommentCount: t.CommentCount,
				IsPinned:     t.IsPinned,
			},
		}
	}
	return results
}

func convertEvents(items []wireEvent) []domain.SearchResult {
	results := make([]domain.SearchResult, len(items))
	for i, e := range items {
		results[i] = domain.SearchResult{
			ID:          e.ID,
			Domain:      domain.DomainEvent,
			Title:       e.Title,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			Event: &domain.EventDetails{
				Date:                e.Date,
				Capacity:            e.Capacity,
				CurrentParticipants: e.CurrentParticipants,
			},
		}
	}
	return results
}

func convertMedia(items []wireMedia) []domain.SearchResult {
	results := make([]domain.SearchResult, len(items))
	for i, m := range items {
		results[i] = domain.SearchResult{
			ID:          m.ID,
			Domain:      domain.DomainMedia,
			Title:       m.Title,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
			Media: &domain.MediaDetails{
				Author:      m.Author,
				ReleaseYear: m.ReleaseYear,
				Genre:       m.Genre,
			},
		}
	}
	return results
}
