// Package dropdown provides the preview panel component for the TUI.
package dropdown

import (
	"fmt"
	"strings"

	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/styles"
	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/services"
)

// Panel renders the debounced search preview under the query input.
type Panel struct {
	state  services.DropdownState
	styles *styles.Styles
}

// NewPanel creates a new dropdown panel component.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{styles: s}
}

// SetState replaces the rendered preview snapshot.
func (p *Panel) SetState(state services.DropdownState) {
	p.state = state
}

// Visible reports whether the panel should be drawn at all.
func (p *Panel) Visible() bool {
	return p.state.Open || p.state.Loading
}

// View renders the preview panel.
func (p *Panel) View() string {
	if !p.Visible() {
		return ""
	}

	if p.state.Loading {
		return p.styles.Dropdown.Render(p.styles.Muted.Render("Searching…"))
	}

	resp := p.state.Results
	if resp == nil || resp.Empty() {
		return p.styles.Dropdown.Render(p.styles.Muted.Render(
			fmt.Sprintf("No matches for %q", p.state.Query)))
	}

	var lines []string
	for _, d := range domain.Domains() {
		for _, r := range resp.ByDomain(d) {
			lines = append(lines, fmt.Sprintf("%s %s",
				p.styles.Badge(d), p.styles.Normal.Render(r.Title)))
		}
	}
	lines = append(lines, p.styles.Help.Render("enter: full search  esc: close"))

	return p.styles.Dropdown.Render(strings.Join(lines, "\n"))
}
