package driven

import "time"

// CancelTimer cancels a scheduled call. It is safe to call more than once
// and after the call has already fired.
type CancelTimer func()

// Debouncer schedules a single delayed call. Debounce timing is an
// effectful concern kept out of the search core so the dropdown controller
// stays unit-testable without real timers.
type Debouncer interface {
	// Schedule runs fn after delay unless cancelled first.
	Schedule(delay time.Duration, fn func()) CancelTimer
}
