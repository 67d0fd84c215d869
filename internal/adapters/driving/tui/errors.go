// Package tui provides the interactive terminal interface for Agora.
// It follows the Elm architecture via Bubbletea.
package tui

import "errors"

// ErrMissingStore is returned when the search store is not provided.
var ErrMissingStore = errors.New("tui: search store is required")

// ErrMissingDropdown is returned when the dropdown controller is not provided.
var ErrMissingDropdown = errors.New("tui: dropdown controller is required")
