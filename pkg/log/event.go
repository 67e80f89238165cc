package log

import (
	"time"
)

// Event represents a timer engine event captured at any point in a context's
// life. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision, wall clock).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ContextID uniquely identifies the timer context (UUID).
	ContextID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// TimerID identifies the timer within its context (1-based, assigned at
	// attach). Zero for context-level events.
	TimerID uint32 `cbor:"4,keyasint,omitempty"`

	// Counter is the raw counter sample observed with the event, if any.
	Counter uint32 `cbor:"5,keyasint,omitempty"`

	// ElapsedSeconds/ElapsedNanos record the timer's accumulated elapsed
	// duration at the time of the event.
	ElapsedSeconds uint32 `cbor:"6,keyasint,omitempty"`
	ElapsedNanos   uint32 `cbor:"7,keyasint,omitempty"`

	// IntervalSeconds/IntervalNanos record the expire interval, for events
	// on timers used in expiration mode.
	IntervalSeconds uint32 `cbor:"8,keyasint,omitempty"`
	IntervalNanos   uint32 `cbor:"9,keyasint,omitempty"`

	// Running indicates whether the timer was running after the event.
	Running bool `cbor:"10,keyasint,omitempty"`

	// SweptTimers is the number of running timers advanced, for sweep events.
	SweptTimers int `cbor:"11,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryContextCreated indicates a context was created.
	CategoryContextCreated Category = 0
	// CategoryContextClosed indicates a context was closed.
	CategoryContextClosed Category = 1
	// CategoryTimerAttached indicates a timer was attached to a context.
	CategoryTimerAttached Category = 2
	// CategoryTimerDetached indicates a timer was detached from its context.
	CategoryTimerDetached Category = 3
	// CategoryTimerStarted indicates a timer was started (elapsed reset).
	CategoryTimerStarted Category = 4
	// CategoryTimerStopped indicates a timer was stopped.
	CategoryTimerStopped Category = 5
	// CategoryExpireSet indicates an expire interval was set (timer restarted).
	CategoryExpireSet Category = 6
	// CategoryTimerRestarted indicates a running timer was re-zeroed.
	CategoryTimerRestarted Category = 7
	// CategoryPeriodicAdvance indicates a periodic advance consumed an interval.
	CategoryPeriodicAdvance Category = 8
	// CategorySweep indicates a context-wide sweep.
	CategorySweep Category = 9
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryContextCreated:
		return "CONTEXT_CREATED"
	case CategoryContextClosed:
		return "CONTEXT_CLOSED"
	case CategoryTimerAttached:
		return "TIMER_ATTACHED"
	case CategoryTimerDetached:
		return "TIMER_DETACHED"
	case CategoryTimerStarted:
		return "TIMER_STARTED"
	case CategoryTimerStopped:
		return "TIMER_STOPPED"
	case CategoryExpireSet:
		return "EXPIRE_SET"
	case CategoryTimerRestarted:
		return "TIMER_RESTARTED"
	case CategoryPeriodicAdvance:
		return "PERIODIC_ADVANCE"
	case CategorySweep:
		return "SWEEP"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the Category named by s (the String form).
// The second return is false if s names no known category.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryContextCreated; c <= CategorySweep; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}
