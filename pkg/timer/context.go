package timer

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stimer-project/stimer-go/pkg/countermath"
	"github.com/stimer-project/stimer-go/pkg/log"
)

// Context creation errors.
var (
	// ErrNilSource is returned by NewContext when no tick source is given.
	ErrNilSource = errors.New("nil tick source")
)

// Config holds the counter-math configuration for a Context.
// Modulus and NsPerTick are immutable after the context is created.
type Config struct {
	// Modulus is the maximum raw counter value before wraparound. The
	// counter ranges over [0, Modulus] inclusive.
	Modulus uint32

	// NsPerTick converts one raw counter increment to nanoseconds.
	NsPerTick uint32

	// EventLogger receives engine events. Nil disables capture.
	EventLogger log.Logger
}

// DefaultConfig returns a config for a full-width 32-bit counter ticking
// once per nanosecond, with event capture disabled.
func DefaultConfig() Config {
	return Config{
		Modulus:   0xFFFFFFFF,
		NsPerTick: 1,
	}
}

// Context owns a registry of timers sharing one counter-math configuration
// and one tick source. All operations are synchronous and non-blocking;
// access from multiple goroutines requires caller-provided synchronization.
type Context struct {
	id        string
	source    Source
	math      countermath.Math
	nsPerTick uint32
	events    log.Logger

	// Dense registry: timers[i].idx == i. Detach swap-removes.
	timers []*Timer

	nextTimerID uint32
	closed      bool
}

// NewContext creates a Context bound to the given tick source.
// Returns ErrNilSource if source is nil.
func NewContext(source Source, cfg Config) (*Context, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	events := cfg.EventLogger
	if events == nil {
		events = log.NoopLogger{}
	}

	c := &Context{
		id:        uuid.NewString(),
		source:    source,
		math:      countermath.New(cfg.Modulus),
		nsPerTick: cfg.NsPerTick,
		events:    events,
	}

	c.events.Log(log.Event{
		Timestamp: time.Now(),
		ContextID: c.id,
		Category:  log.CategoryContextCreated,
	})
	return c, nil
}

// ID returns the context's UUID, as recorded in trace events.
func (c *Context) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

// Modulus returns the configured maximum counter value.
func (c *Context) Modulus() uint32 {
	if c == nil {
		return 0
	}
	return c.math.Modulus()
}

// NsPerTick returns the configured nanoseconds-per-tick scale factor.
func (c *Context) NsPerTick() uint32 {
	if c == nil {
		return 0
	}
	return c.nsPerTick
}

// Len returns the number of attached timers.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.timers)
}

// Close detaches every registered timer and marks the context closed.
// Detached timers stay usable in inert form: their last recorded state
// remains readable but no longer advances. Close is idempotent and nil-safe.
func (c *Context) Close() {
	if c == nil || c.closed {
		return
	}

	for len(c.timers) > 0 {
		c.detach(c.timers[len(c.timers)-1])
	}
	c.closed = true

	c.events.Log(log.Event{
		Timestamp: time.Now(),
		ContextID: c.id,
		Category:  log.CategoryContextClosed,
	})
}

// Sweep samples the counter once and advances every running timer by the
// delta since its last checkpoint. Stopped timers are skipped. Nil-safe,
// never blocks, and has no failure mode.
func (c *Context) Sweep() {
	if c == nil || c.closed {
		return
	}

	now := c.source.Ticks()
	swept := 0
	for _, t := range c.timers {
		if t.running {
			t.advanceTo(now)
			swept++
		}
	}

	c.events.Log(log.Event{
		Timestamp:   time.Now(),
		ContextID:   c.id,
		Category:    log.CategorySweep,
		Counter:     now,
		SweptTimers: swept,
	})
}

// NewTimer creates a zero-initialized, stopped timer attached to the
// context. Returns nil on a nil or closed context; callers must check.
func (c *Context) NewTimer() *Timer {
	if c == nil || c.closed {
		return nil
	}

	c.nextTimerID++
	t := &Timer{
		ctx: c,
		id:  c.nextTimerID,
		idx: len(c.timers),
	}
	c.timers = append(c.timers, t)

	c.logTimer(log.CategoryTimerAttached, t, 0)
	return t
}

// detach swap-removes t from the registry and severs its back-reference.
func (c *Context) detach(t *Timer) {
	last := len(c.timers) - 1
	c.timers[t.idx] = c.timers[last]
	c.timers[t.idx].idx = t.idx
	c.timers[last] = nil
	c.timers = c.timers[:last]

	t.ctx = nil
	t.idx = -1

	c.logTimer(log.CategoryTimerDetached, t, 0)
}

// logTimer emits a timer-scoped event with the timer's current state.
func (c *Context) logTimer(cat log.Category, t *Timer, counter uint32) {
	c.events.Log(log.Event{
		Timestamp:       time.Now(),
		ContextID:       c.id,
		Category:        cat,
		TimerID:         t.id,
		Counter:         counter,
		ElapsedSeconds:  t.elapsed.Seconds,
		ElapsedNanos:    t.elapsed.Nanoseconds,
		IntervalSeconds: t.expireInterval.Seconds,
		IntervalNanos:   t.expireInterval.Nanoseconds,
		Running:         t.running,
	})
}
