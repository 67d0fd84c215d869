package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/core/ports/driving"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// sessionSnapshot is the session-slot serialization of restorable state.
type sessionSnapshot struct {
	Query     string               `json:"query"`
	Filters   domain.SearchFilters `json:"filters"`
	Timestamp time.Time            `json:"timestamp"`
	SessionID string               `json:"sessionId"`
}

// Subscriber receives every state transition.
type Subscriber func(domain.SearchState)

// SearchStore orchestrates the search state machine: it owns the single
// SearchState instance, runs every change through the pure reducer, persists
// the restorable fields to the session slot, and notifies subscribers.
type SearchStore struct {
	search  driving.SearchService
	history driving.HistoryService
	session driven.KVStore
	clock   driven.Clock

	mu        sync.Mutex
	state     domain.SearchState
	searchSeq uint64
	nextSub   int
	subs      map[int]Subscriber
}

// NewSearchStore creates the store and rehydrates query and filters from
// the session slot before any action runs. A corrupted slot is ignored.
func NewSearchStore(
	search driving.SearchService,
	history driving.HistoryService,
	session driven.KVStore,
	clock driven.Clock,
) *SearchStore {
	if clock == nil {
		clock = driven.SystemClock()
	}

	st := &SearchStore{
		search:  search,
		history: history,
		session: session,
		clock:   clock,
		state:   domain.NewSearchState(uuid.NewString()),
		subs:    make(map[int]Subscriber),
	}
	st.restoreSession()
	return st
}

// State returns a snapshot of the current state.
func (s *SearchStore) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener for state transitions and returns an
// unsubscribe function. Listeners run synchronously on the dispatching
// goroutine and must not call back into the store.
func (s *SearchStore) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetQuery updates the query text and clears any existing error. It never
// triggers network I/O.
func (s *SearchStore) SetQuery(query string) {
	s.dispatch(domain.SetQuery{Query: query}, true)
}

// PerformSearch runs a full search for query. On success the results are
// committed and, when saveToHistory is set, the query is recorded in
// history. A superseded search is swallowed: it neither commits results nor
// surfaces an error message.
func (s *SearchStore) PerformSearch(ctx context.Context, query string, saveToHistory bool) error {
	return s.performSearch(ctx, query, saveToHistory, domain.SearchOptions{})
}

// PerformSearchBypassingCache forces a fresh fetch for this one query. The
// fresh payload still re-enters the cache; other cached queries are left
// alone.
func (s *SearchStore) PerformSearchBypassingCache(ctx context.Context, query string, saveToHistory bool) error {
	return s.performSearch(ctx, query, saveToHistory, domain.SearchOptions{SkipCache: true})
}

func (s *SearchStore) performSearch(ctx context.Context, query string, saveToHistory bool, opts domain.SearchOptions) error {
	if domain.IsBlankQuery(query) {
		return domain.ErrEmptyQuery
	}

	seq, filters := s.beginSearch(query)

	resp, err := s.runSearch(ctx, query, filters, opts)
	if err != nil {
		if domain.IsCancelled(err) {
			logger.Debug("Search for %q superseded, dropping settlement", query)
			return err
		}
		s.commit(seq, domain.SearchFailed{Message: domain.UserMessage(err)})
		return err
	}

	resp = applyClientFilters(resp, filters, s.clock.Now())

	if !s.commit(seq, domain.SearchSucceeded{Response: resp}) {
		// A newer search took over while this one was resolving.
		return domain.ErrSearchCancelled
	}

	if saveToHistory {
		if _, err := s.history.Add(ctx, query, resp.TotalResults); err != nil {
			logger.Warn("Recording history failed: %v", err)
		} else {
			s.RefreshHistory(ctx)
		}
	}
	return nil
}

// PerformFilteredSearch merges a partial filter update and re-runs the
// current query. Filter changes never pollute history.
func (s *SearchStore) PerformFilteredSearch(ctx context.Context, partial domain.PartialFilters) error {
	s.mu.Lock()
	merged := s.state.Filters.Merge(partial)
	query := s.state.Query
	s.mu.Unlock()

	s.dispatch(domain.FiltersChanged{Filters: merged}, true)

	if domain.IsBlankQuery(query) {
		return nil
	}
	return s.PerformSearch(ctx, query, false)
}

// ClearSearch resets query, results and error back to Idle and aborts the
// submit stream's in-flight request through the search service's own
// cancellation discipline.
func (s *SearchStore) ClearSearch() {
	if svc, ok := s.search.(*SearchService); ok {
		svc.Cancel(domain.StreamSubmit)
	}
	s.dispatch(domain.ClearSearch{}, true)
}

// RestoreFromURL rehydrates query and filters from a shareable URL's
// decoded parameters. A non-blank query triggers a search that is not
// recorded in history.
func (s *SearchStore) RestoreFromURL(ctx context.Context, query string, filters domain.SearchFilters) error {
	s.dispatch(domain.Restore{Query: query, Filters: filters}, true)

	if domain.IsBlankQuery(query) {
		return nil
	}
	return s.PerformSearch(ctx, query, false)
}

// RestoreSession re-runs the query rehydrated from the session slot during
// construction. Like RestoreFromURL, a blank query only rehydrates and the
// restored search is never recorded in history.
func (s *SearchStore) RestoreSession(ctx context.Context) error {
	s.mu.Lock()
	query := s.state.Query
	s.mu.Unlock()

	if domain.IsBlankQuery(query) {
		return nil
	}
	return s.PerformSearch(ctx, query, false)
}

// RefreshHistory reloads the history list into the state.
func (s *SearchStore) RefreshHistory(ctx context.Context) {
	items, err := s.history.List(ctx)
	if err != nil {
		logger.Warn("Loading history failed: %v", err)
		return
	}
	s.dispatch(domain.HistoryReplaced{Items: items}, false)
}

// beginSearch claims the next search sequence number and transitions to
// Searching. Only the holder of the latest sequence may commit.
func (s *SearchStore) beginSearch(query string) (uint64, domain.SearchFilters) {
	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.state = domain.Reduce(s.state, domain.SearchStarted{Query: query, At: s.clock.Now()})
	filters := s.state.Filters
	state := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.persistSession(state)
	notify(subs, state)
	return seq, filters
}

// commit applies a search settlement only if seq is still the latest.
func (s *SearchStore) commit(seq uint64, action domain.Action) bool {
	s.mu.Lock()
	if seq != s.searchSeq {
		s.mu.Unlock()
		return false
	}
	s.state = domain.Reduce(s.state, action)
	state := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, state)
	return true
}

// dispatch runs an action through the reducer, optionally persisting the
// session slot, and notifies subscribers.
func (s *SearchStore) dispatch(action domain.Action, persist bool) {
	s.mu.Lock()
	s.state = domain.Reduce(s.state, action)
	state := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if persist {
		s.persistSession(state)
	}
	notify(subs, state)
}

// runSearch routes a search through the right service call for the active
// type filter.
func (s *SearchStore) runSearch(
	ctx context.Context, query string, filters domain.SearchFilters, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	d, restricted := domain.ParseDomain(string(filters.Type))
	if !restricted {
		return s.search.SearchAll(ctx, query, opts)
	}

	results, err := s.search.SearchByType(ctx, query, d, opts)
	if err != nil {
		return nil, err
	}

	resp := &domain.SearchResponse{TotalResults: len(results)}
	switch d {
	case domain.DomainClub:
		resp.Clubs = results
	case domain.DomainThread:
		resp.Threads = results
	case domain.DomainEvent:
		resp.Events = results
	case domain.DomainMedia:
		resp.Media = results
	}
	return resp, nil
}

// persistSession serializes the restorable fields to the session slot.
// Persistence failures are logged, never surfaced.
func (s *SearchStore) persistSession(state domain.SearchState) {
	if s.session == nil {
		return
	}

	snap := sessionSnapshot{
		Query:     state.Query,
		Filters:   state.Filters,
		Timestamp: s.clock.Now(),
		SessionID: state.SessionID,
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		logger.Warn("Serializing session state failed: %v", err)
		return
	}
	if err := s.session.Set(driven.SessionSlotKey, string(raw)); err != nil {
		logger.Warn("Persisting session state failed: %v", err)
	}
}

// restoreSession rehydrates query and filters from the session slot.
// Corrupted data is ignored rather than surfaced.
func (s *SearchStore) restoreSession() {
	if s.session == nil {
		return
	}

	raw, ok := s.session.Get(driven.SessionSlotKey)
	if !ok || raw == "" {
		return
	}

	var snap sessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		logger.Warn("Ignoring corrupted session slot: %v", err)
		return
	}

	if snap.Filters.Type == "" {
		snap.Filters = domain.DefaultFilters()
	}
	s.state = domain.Reduce(s.state, domain.Restore{Query: snap.Query, Filters: snap.Filters})
	if snap.SessionID != "" {
		s.state.SessionID = snap.SessionID
	}
	logger.Debug("Restored session %s (query %q)", s.state.SessionID, snap.Query)
}

func (s *SearchStore) snapshotSubs() []Subscriber {
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []Subscriber, state domain.SearchState) {
	for _, fn := range subs {
		fn(state)
	}
}

// applyClientFilters applies sort order and time range on top of the scored
// response. Relevance ordering is the service's own and passes through.
func applyClientFilters(resp *domain.SearchResponse, filters domain.SearchFilters, now time.Time) *domain.SearchResponse {
	out := &domain.SearchResponse{
		Clubs:   filterAndSort(resp.Clubs, filters, now),
		Threads: filterAndSort(resp.Threads, filters, now),
		Events:  filterAndSort(resp.Events, filters, now),
		Media:   filterAndSort(resp.Media, filters, now),
	}
	out.TotalResults = len(out.Clubs) + len(out.Threads) + len(out.Events) + len(out.Media)
	return out
}

func filterAndSort(results []domain.SearchResult, filters domain.SearchFilters, now time.Time) []domain.SearchResult {
	if cutoff, ok := timeRangeCutoff(filters.TimeRange, now); ok {
		kept := make([]domain.SearchResult, 0, len(results))
		for _, r := range results {
			if !r.CreatedAt.Before(cutoff) {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	switch filters.SortBy {
	case domain.SortRecent:
		sorted := append([]domain.SearchResult(nil), results...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
		return sorted
	case domain.SortPopular:
		sorted := append([]domain.SearchResult(nil), results...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return popularity(sorted[i]) > popularity(sorted[j])
		})
		return sorted
	default:
		return results
	}
}

// popularity is the client-side popularity signal used by SortPopular.
func popularity(r domain.SearchResult) int {
	switch r.Domain {
	case domain.DomainClub:
		if r.Club != nil {
			return r.Club.MemberCount
		}
	case domain.DomainThread:
		if r.Thread != nil {
			return r.Thread.ViewCount + r.Thread.CommentCount
		}
	case domain.DomainEvent:
		if r.Event != nil {
			return r.Event.CurrentParticipants
		}
	case domain.DomainMedia:
		if r.Media != nil {
			return r.Media.ReleaseYear
		}
	}
	return 0
}

func timeRangeCutoff(timeRange string, now time.Time) (time.Time, bool) {
	switch timeRange {
	case "day":
		return now.AddDate(0, 0, -1), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
