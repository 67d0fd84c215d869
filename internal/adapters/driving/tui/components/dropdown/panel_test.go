package dropdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/services"
)

func TestPanel_HiddenByDefault(t *testing.T) {
	p := NewPanel(nil)

	assert.False(t, p.Visible())
	assert.Empty(t, p.View())
}

func TestPanel_LoadingState(t *testing.T) {
	p := NewPanel(nil)
	p.SetState(services.DropdownState{Query: "ch", Loading: true})

	assert.True(t, p.Visible())
	assert.Contains(t, p.View(), "Searching…")
}

func TestPanel_RendersPreviewRows(t *testing.T) {
	p := NewPanel(nil)
	p.SetState(services.DropdownState{
		Query: "ch",
		Open:  true,
		Results: &domain.SearchResponse{
			Clubs: []domain.SearchResult{
				{ID: "c1", Domain: domain.DomainClub, Title: "Chess Club"},
			},
			Media: []domain.SearchResult{
				{ID: "m1", Domain: domain.DomainMedia, Title: "Chess: The Musical"},
			},
			TotalResults: 2,
		},
	})

	view := p.View()
	assert.Contains(t, view, "Chess Club")
	assert.Contains(t, view, "Chess: The Musical")
	assert.Contains(t, view, "enter: full search")
}

func TestPanel_EmptyResults(t *testing.T) {
	p := NewPanel(nil)
	p.SetState(services.DropdownState{
		Query:   "zzz",
		Open:    true,
		Results: &domain.SearchResponse{},
	})

	assert.Contains(t, p.View(), `No matches for "zzz"`)
}

func TestPanel_ClosedAfterOpen(t *testing.T) {
	p := NewPanel(nil)
	p.SetState(services.DropdownState{Query: "ch", Open: true})
	p.SetState(services.DropdownState{Query: "ch", Open: false})

	assert.False(t, p.Visible())
	assert.Empty(t, p.View())
}
