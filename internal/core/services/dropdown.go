package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/core/ports/driving"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// Dropdown defaults.
const (
	// DefaultMinChars is the minimum query length before a preview runs.
	DefaultMinChars = 2

	// DefaultDebounce is how long typing must pause before a preview runs.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultMaxPerDomain caps preview results shown per content domain.
	DefaultMaxPerDomain = 3
)

// DropdownConfig tunes the debounced preview behaviour.
type DropdownConfig struct {
	MinChars     int
	Debounce     time.Duration
	MaxPerDomain int
}

// DefaultDropdownConfig returns the standard preview tuning.
func DefaultDropdownConfig() DropdownConfig {
	return DropdownConfig{
		MinChars:     DefaultMinChars,
		Debounce:     DefaultDebounce,
		MaxPerDomain: DefaultMaxPerDomain,
	}
}

// DropdownState is the published snapshot consumers render.
type DropdownState struct {
	// Query is the text the visible results belong to.
	Query string

	// Results holds the truncated per-domain preview, nil before the
	// first successful preview.
	Results *domain.SearchResponse

	// Open reports whether the dropdown should be visible.
	Open bool

	// Loading reports whether a preview fetch is pending or in flight.
	Loading bool
}

// Dropdown turns keystroke-level query changes into debounced preview
// searches. It owns the dropdown cancellation stream, so previews never
// cancel explicit submissions. A superseded preview keeps the previously
// published results on screen; every other failure collapses to an empty
// preview because previews must never disrupt typing.
type Dropdown struct {
	search    driving.SearchService
	debouncer driven.Debouncer
	cfg       DropdownConfig

	mu       sync.Mutex
	pending  driven.CancelTimer
	seq      uint64
	state    DropdownState
	listener func(DropdownState)
}

// NewDropdown creates a dropdown controller.
func NewDropdown(search driving.SearchService, debouncer driven.Debouncer, cfg DropdownConfig) *Dropdown {
	if cfg.MinChars <= 0 {
		cfg.MinChars = DefaultMinChars
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MaxPerDomain <= 0 {
		cfg.MaxPerDomain = DefaultMaxPerDomain
	}
	return &Dropdown{search: search, debouncer: debouncer, cfg: cfg}
}

// SetListener registers the consumer callback invoked on every published
// state change.
func (d *Dropdown) SetListener(fn func(DropdownState)) {
	d.mu.Lock()
	d.listener = fn
	d.mu.Unlock()
}

// State returns the current published state.
func (d *Dropdown) State() DropdownState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SetQuery feeds one keystroke-level query change into the controller.
// Queries shorter than MinChars clear and close the dropdown immediately
// with no network call; anything longer (re)starts the debounce timer, and
// only the value present when the timer fires is searched.
func (d *Dropdown) SetQuery(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)

	d.mu.Lock()
	if d.pending != nil {
		d.pending()
		d.pending = nil
	}
	d.seq++
	seq := d.seq

	if len([]rune(trimmed)) < d.cfg.MinChars {
		d.state = DropdownState{}
		state := d.state
		fn := d.listener
		d.mu.Unlock()
		emit(fn, state)
		return
	}

	d.state.Query = trimmed
	d.state.Loading = true
	state := d.state
	fn := d.listener
	d.pending = d.debouncer.Schedule(d.cfg.Debounce, func() {
		d.fire(ctx, trimmed, seq)
	})
	d.mu.Unlock()
	emit(fn, state)
}

// Close hides the dropdown without touching the query or results. Callers
// use it on outside click or submit.
func (d *Dropdown) Close() {
	d.mu.Lock()
	d.state.Open = false
	state := d.state
	fn := d.listener
	d.mu.Unlock()
	emit(fn, state)
}

// Stop cancels any pending timer and aborts the dropdown stream's in-flight
// request. Called when the consumer goes away.
func (d *Dropdown) Stop() {
	d.mu.Lock()
	if d.pending != nil {
		d.pending()
		d.pending = nil
	}
	d.seq++
	d.mu.Unlock()

	if svc, ok := d.search.(*SearchService); ok {
		svc.Cancel(domain.StreamDropdown)
	}
}

// fire runs the debounced preview search for query.
func (d *Dropdown) fire(ctx context.Context, query string, seq uint64) {
	resp, err := d.search.SearchAll(ctx, query, domain.SearchOptions{Stream: domain.StreamDropdown})

	d.mu.Lock()
	if seq != d.seq {
		// A newer keystroke already took over; drop this settlement
		// without disturbing whatever is on screen.
		d.mu.Unlock()
		return
	}

	if err != nil && domain.IsCancelled(err) {
		logger.Debug("Dropdown preview for %q superseded", query)
		d.mu.Unlock()
		return
	}

	d.state.Loading = false
	if err != nil {
		logger.Debug("Dropdown preview for %q failed: %v", query, err)
		d.state.Results = &domain.SearchResponse{}
	} else {
		truncated := resp.Truncate(d.cfg.MaxPerDomain)
		d.state.Query = query
		d.state.Results = truncated
		if !truncated.Empty() {
			d.state.Open = true
		}
	}

	state := d.state
	fn := d.listener
	d.mu.Unlock()
	emit(fn, state)
}

func emit(fn func(DropdownState), state DropdownState) {
	if fn != nil {
		fn(state)
	}
}
