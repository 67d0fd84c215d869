// Package list provides the search result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/styles"
	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// ResultList displays aggregated search results in a navigable list.
// Results from all content domains are flattened in response order with
// per-domain badges.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		results:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   12,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	visible := r.height - 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(i))
	}

	if end < len(r.results) {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  … %d more", len(r.results)-end)))
	}

	return strings.Join(lines, "\n")
}

func (r *ResultList) renderRow(i int) string {
	res := r.results[i]
	badge := r.styles.Badge(res.Domain)
	row := fmt.Sprintf("%s %s (%.1f)", badge, res.Title, res.RelevanceScore)

	if i == r.selected {
		return r.styles.Selected.Render("> " + row)
	}
	return r.styles.Normal.Render("  " + row)
}

// SetResponse replaces the list contents from an aggregated response.
// Order within each domain is preserved; domains appear in canonical order.
func (r *ResultList) SetResponse(resp *domain.SearchResponse) {
	r.results = r.results[:0]
	if resp != nil {
		for _, d := range domain.Domains() {
			r.results = append(r.results, resp.ByDomain(d)...)
		}
	}
	if r.selected >= len(r.results) {
		r.selected = 0
	}
}

// Selected returns the currently highlighted result, if any.
func (r *ResultList) Selected() (domain.SearchResult, bool) {
	if r.selected < 0 || r.selected >= len(r.results) {
		return domain.SearchResult{}, false
	}
	return r.results[r.selected], true
}

// Len returns the number of listed results.
func (r *ResultList) Len() int {
	return len(r.results)
}

// MoveUp moves the selection up one row.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down one row.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetSize adjusts the list dimensions.
func (r *ResultList) SetSize(width, height int) {
	r.width = width
	r.height = height
}
