package tui

import (
	"github.com/agora-labs/agora-cli/internal/core/services"
)

// Ports aggregates everything the TUI needs from the core.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Store owns search state, persistence and history recording.
	// Recent searches render from its state snapshots.
	Store *services.SearchStore

	// Dropdown drives the debounced preview panel.
	Dropdown *services.Dropdown
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Store == nil {
		return ErrMissingStore
	}
	if p.Dropdown == nil {
		return ErrMissingDropdown
	}
	return nil
}
