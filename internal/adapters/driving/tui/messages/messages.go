// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/services"
)

// StateUpdated carries a new search state snapshot from the store.
type StateUpdated struct {
	State domain.SearchState
}

// DropdownUpdated carries a new dropdown preview snapshot.
type DropdownUpdated struct {
	State services.DropdownState
}

// SearchSettled signals that a submitted search finished resolving.
// The resulting state arrives separately via StateUpdated.
type SearchSettled struct {
	Err error
}
