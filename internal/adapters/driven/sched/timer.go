// Package sched provides the real timer-backed debouncer. Tests use a
// manual fake instead so debounce behaviour stays deterministic.
package sched

import (
	"time"

	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
)

// Ensure TimerDebouncer implements the interface.
var _ driven.Debouncer = (*TimerDebouncer)(nil)

// TimerDebouncer schedules calls with time.AfterFunc.
type TimerDebouncer struct{}

// NewTimerDebouncer creates a timer-backed debouncer.
func NewTimerDebouncer() *TimerDebouncer {
	return &TimerDebouncer{}
}

// Schedule runs fn after delay unless cancelled first.
func (d *TimerDebouncer) Schedule(delay time.Duration, fn func()) driven.CancelTimer {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}
