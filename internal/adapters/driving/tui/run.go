package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/messages"
	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/services"
)

// Run creates the app, wires store and dropdown notifications into the
// Bubbletea message loop and blocks until the user quits.
func Run(ctx context.Context, ports *Ports) error {
	app, err := NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := ports.Store.Subscribe(func(state domain.SearchState) {
		p.Send(messages.StateUpdated{State: state})
	})
	defer unsubscribe()

	ports.Dropdown.SetListener(func(state services.DropdownState) {
		p.Send(messages.DropdownUpdated{State: state})
	})
	defer ports.Dropdown.Stop()

	// Populate the recent-searches panel before the first keystroke.
	ports.Store.RefreshHistory(ctx)

	// A rehydrated session re-runs its query; results and errors arrive
	// through the store subscription.
	go ports.Store.RestoreSession(ctx) //nolint:errcheck

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
