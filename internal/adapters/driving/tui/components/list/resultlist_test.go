package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-labs/agora-cli/internal/core/domain"
)

func testResponse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Clubs: []domain.SearchResult{
			{ID: "c1", Domain: domain.DomainClub, Title: "Chess Club", RelevanceScore: 10},
		},
		Threads: []domain.SearchResult{
			{ID: "t1", Domain: domain.DomainThread, Title: "Chess openings", RelevanceScore: 7},
			{ID: "t2", Domain: domain.DomainThread, Title: "Endgame study", RelevanceScore: 4},
		},
		Events: []domain.SearchResult{
			{ID: "e1", Domain: domain.DomainEvent, Title: "Chess night", RelevanceScore: 6},
		},
		TotalResults: 4,
	}
}

func TestResultList_FlattensInCanonicalOrder(t *testing.T) {
	l := NewResultList(nil)
	l.SetResponse(testResponse())

	require.Equal(t, 4, l.Len())

	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "c1", sel.ID, "clubs come before threads and events")
}

func TestResultList_Navigation(t *testing.T) {
	l := NewResultList(nil)
	l.SetResponse(testResponse())

	l.MoveUp()
	sel, _ := l.Selected()
	assert.Equal(t, "c1", sel.ID, "cannot move above the first row")

	l.MoveDown()
	l.MoveDown()
	sel, _ = l.Selected()
	assert.Equal(t, "t2", sel.ID)

	l.MoveDown()
	l.MoveDown()
	sel, _ = l.Selected()
	assert.Equal(t, "e1", sel.ID, "cannot move below the last row")
}

func TestResultList_UpdateHandlesArrowKeys(t *testing.T) {
	l := NewResultList(nil)
	l.SetResponse(testResponse())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, _ := l.Selected()
	assert.Equal(t, "t1", sel.ID)

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	sel, _ = l.Selected()
	assert.Equal(t, "c1", sel.ID)
}

func TestResultList_SelectionResetWhenListShrinks(t *testing.T) {
	l := NewResultList(nil)
	l.SetResponse(testResponse())
	l.MoveDown()
	l.MoveDown()
	l.MoveDown()

	l.SetResponse(&domain.SearchResponse{
		Clubs:        []domain.SearchResult{{ID: "c9", Domain: domain.DomainClub, Title: "Go Club"}},
		TotalResults: 1,
	})

	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "c9", sel.ID)
}

func TestResultList_EmptyView(t *testing.T) {
	l := NewResultList(nil)

	assert.Contains(t, l.View(), "No results")

	l.SetResponse(nil)
	_, ok := l.Selected()
	assert.False(t, ok)
}

func TestResultList_ViewShowsHeaderAndRows(t *testing.T) {
	l := NewResultList(nil)
	l.SetSize(80, 20)
	l.SetResponse(testResponse())

	view := l.View()
	assert.Contains(t, view, "Results (4)")
	assert.Contains(t, view, "Chess Club (10.0)")
	assert.Contains(t, view, "Endgame study (4.0)")
}

func TestResultList_ViewTruncatesToHeight(t *testing.T) {
	l := NewResultList(nil)
	l.SetSize(80, 5)
	l.SetResponse(testResponse())

	view := l.View()
	assert.Contains(t, view, "… 2 more")
}
