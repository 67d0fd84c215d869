package domain

import "time"

// SearchStatus is the lifecycle phase of the current search cycle.
type SearchStatus int

const (
	// StatusIdle means no search is active.
	StatusIdle SearchStatus = iota

	// StatusSearching means a search is in flight.
	StatusSearching

	// StatusSucceeded means the last search completed with results.
	StatusSucceeded

	// StatusFailed means the last search ended in a user-visible error.
	StatusFailed
)

// String returns the string representation of the status.
func (s SearchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SearchState is the aggregate the search state store reduces over.
// Exactly one instance exists per browsing session.
type SearchState struct {
	// Query is the current search text.
	Query string

	// Response holds the results of the last successful search.
	Response *SearchResponse

	// Status is the current lifecycle phase.
	Status SearchStatus

	// Error is the human-readable failure message, empty unless Failed.
	Error string

	// Filters are the active search facets.
	Filters SearchFilters

	// History is the remembered past searches, most recent first.
	History []HistoryItem

	// LastSearchAt is when the last search was dispatched.
	LastSearchAt time.Time

	// SessionID identifies this browsing session.
	SessionID string
}

// NewSearchState returns the initial state for a session.
func NewSearchState(sessionID string) SearchState {
	return SearchState{
		Status:    StatusIdle,
		Filters:   DefaultFilters(),
		SessionID: sessionID,
	}
}

// Action is a state transition event processed by Reduce.
// It is a closed tagged union: only the types in this file implement it.
type Action interface {
	isAction()
}

// SetQuery updates the query text and clears any existing error.
// It never triggers network I/O by itself.
type SetQuery struct {
	Query string
}

// SearchStarted marks the beginning of a search cycle for a query.
type SearchStarted struct {
	Query string
	At    time.Time
}

// SearchSucceeded commits the results of a completed search.
type SearchSucceeded struct {
	Response *SearchResponse
}

// SearchFailed records a user-visible search failure.
type SearchFailed struct {
	Message string
}

// FiltersChanged replaces the active filters.
type FiltersChanged struct {
	Filters SearchFilters
}

// HistoryReplaced swaps in a new history list.
type HistoryReplaced struct {
	Items []HistoryItem
}

// ClearSearch resets query, results and error back to Idle. In-flight
// requests are cancelled by the search service, not by the reducer.
type ClearSearch struct{}

// Restore rehydrates query and filters from a persisted slot or URL.
type Restore struct {
	Query   string
	Filters SearchFilters
}

func (SetQuery) isAction()        {}
func (SearchStarted) isAction()   {}
func (SearchSucceeded) isAction() {}
func (SearchFailed) isAction()    {}
func (FiltersChanged) isAction()  {}
func (HistoryReplaced) isAction() {}
func (ClearSearch) isAction()     {}
func (Restore) isAction()         {}

// Reduce applies an action to a state and returns the next state.
// It is pure: no I/O, no clock reads, no mutation of the input.
func Reduce(state SearchState, action Action) SearchState {
	switch a := action.(type) {
	case SetQuery:
		state.Query = a.Query
		state.Error = ""
		return state

	case SearchStarted:
		state.Query = a.Query
		state.Status = StatusSearching
		state.Error = ""
		state.LastSearchAt = a.At
		return state

	case SearchSucceeded:
		state.Response = a.Response
		state.Status = StatusSucceeded
		state.Error = ""
		return state

	case SearchFailed:
		state.Status = StatusFailed
		state.Error = a.Message
		return state

	case FiltersChanged:
		state.Filters = a.Filters
		return state

	case HistoryReplaced:
		state.History = a.Items
		return state

	case ClearSearch:
		state.Query = ""
		state.Response = nil
		state.Status = StatusIdle
		state.Error = ""
		return state

	case Restore:
		state.Query = a.Query
		state.Filters = a.Filters
		state.Error = ""
		return state

	default:
		return state
	}
}
