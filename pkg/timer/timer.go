package timer

import (
	"github.com/stimer-project/stimer-go/pkg/duration"
	"github.com/stimer-project/stimer-go/pkg/log"
)

// Timer tracks accumulated elapsed run time against samples of its
// context's tick counter, and optionally an expiration interval.
//
// A Timer belongs to at most one Context. Once detached (explicitly or by
// Context.Close) it becomes inert: queries return the last recorded state
// without advancing, and mutations are no-ops. All exported methods are
// nil-receiver safe.
type Timer struct {
	ctx *Context
	id  uint32
	idx int

	// checkpoint is the raw counter value at which elapsed was last
	// brought up to date. Meaningful only while running.
	checkpoint uint32

	running        bool
	elapsed        duration.Duration
	expireInterval duration.Duration
}

// ID returns the timer's context-local identifier (1-based, assigned at
// attach), as recorded in trace events. Zero for a nil timer.
func (t *Timer) ID() uint32 {
	if t == nil {
		return 0
	}
	return t.id
}

// Attached reports whether the timer is still registered to a context.
func (t *Timer) Attached() bool {
	return t != nil && t.ctx != nil
}

// Running reports whether the timer is accumulating elapsed time.
func (t *Timer) Running() bool {
	return t != nil && t.running
}

// Detach removes the timer from its context's registry. The timer keeps
// its last recorded state but no longer advances. No-op when nil or
// already detached.
func (t *Timer) Detach() {
	if t == nil || t.ctx == nil {
		return
	}
	t.ctx.detach(t)
}

// Start resets elapsed time to zero, checkpoints to the current counter
// sample, and sets the timer running. Starting an already-running timer
// discards prior accumulation: this is a reset, not a resume. No-op on a
// detached timer.
func (t *Timer) Start() {
	if t == nil || t.ctx == nil {
		return
	}
	t.startAndCheckpoint()
	t.ctx.logTimer(log.CategoryTimerStarted, t, t.checkpoint)
}

// Stop brings elapsed time fully up to date with one final
// advance-and-checkpoint and halts accumulation. Elapsed time then stays
// frozen until the next Start. No-op when already stopped or detached.
func (t *Timer) Stop() {
	if t == nil || t.ctx == nil || !t.running {
		return
	}

	now := t.ctx.source.Ticks()
	t.advanceTo(now)
	t.running = false
	t.ctx.logTimer(log.CategoryTimerStopped, t, now)
}

// Elapsed returns the accumulated elapsed duration. A running attached
// timer is advanced to the current counter sample first, so the result is
// accurate at the moment of the call. A stopped or detached timer returns
// its state as last recorded.
func (t *Timer) Elapsed() duration.Duration {
	if t == nil {
		return duration.Duration{}
	}
	if t.running && t.ctx != nil {
		t.advanceTo(t.ctx.source.Ticks())
	}
	return t.elapsed
}

// ExpireAfter restarts the timer from zero elapsed time and records
// interval as the expiration target. The restart happens even if the timer
// was already running. No-op on a detached timer.
func (t *Timer) ExpireAfter(interval duration.Duration) {
	if t == nil || t.ctx == nil {
		return
	}
	t.startAndCheckpoint()
	t.expireInterval = normalize(interval)
	t.ctx.logTimer(log.CategoryExpireSet, t, t.checkpoint)
}

// ExpireAfterSeconds is ExpireAfter with a whole-second interval.
func (t *Timer) ExpireAfterSeconds(s uint32) {
	t.ExpireAfter(duration.FromSeconds(s))
}

// ExpireAfterMilliseconds is ExpireAfter with a millisecond interval.
func (t *Timer) ExpireAfterMilliseconds(ms uint32) {
	t.ExpireAfter(duration.FromMilliseconds(ms))
}

// ExpireAfterMicroseconds is ExpireAfter with a microsecond interval.
func (t *Timer) ExpireAfterMicroseconds(us uint32) {
	t.ExpireAfter(duration.FromMicroseconds(us))
}

// ExpireAfterNanoseconds is ExpireAfter with a nanosecond interval.
func (t *Timer) ExpireAfterNanoseconds(ns uint32) {
	t.ExpireAfter(duration.FromNanoseconds(ns))
}

// ExpireInterval returns the recorded expiration target.
func (t *Timer) ExpireInterval() duration.Duration {
	if t == nil {
		return duration.Duration{}
	}
	return t.expireInterval
}

// Expired reports whether accumulated elapsed time has reached the
// expiration interval. A running attached timer is advanced first. The
// check is a passive poll: repeated calls without intervening time advance
// return the same answer, and an expired timer stays expired until reset.
func (t *Timer) Expired() bool {
	if t == nil {
		return false
	}
	if t.running && t.ctx != nil {
		t.advanceTo(t.ctx.source.Ticks())
	}
	return t.elapsed.GreaterEqual(t.expireInterval)
}

// Restart re-zeroes elapsed time and checkpoints to the current sample
// while keeping the expiration interval. Only effective on a running
// timer: a stopped timer stays stopped, so an explicit Stop cannot be
// silently undone.
func (t *Timer) Restart() {
	if t == nil || t.ctx == nil || !t.running {
		return
	}
	t.startAndCheckpoint()
	t.ctx.logTimer(log.CategoryTimerRestarted, t, t.checkpoint)
}

// AdvancePeriodic advances the timer and, if it has expired, consumes
// exactly one expiration interval from the elapsed time instead of
// zeroing it. The overshoot past the interval is retained, so a timer
// driven periodically keeps phase across cycles instead of drifting by
// the polling latency. If the timer has not expired the call is a pure
// advance. Only effective on a running, attached timer.
func (t *Timer) AdvancePeriodic() {
	if t == nil || t.ctx == nil || !t.running {
		return
	}

	now := t.ctx.source.Ticks()
	t.advanceTo(now)

	if !t.elapsed.GreaterEqual(t.expireInterval) {
		return
	}

	// GreaterEqual above rules out underflow.
	t.elapsed, _ = t.elapsed.Sub(t.expireInterval)

	t.ctx.logTimer(log.CategoryPeriodicAdvance, t, now)
}

// advanceTo folds the counter delta since the last checkpoint into the
// elapsed duration and moves the checkpoint to now. No-op for stopped
// timers or non-positive deltas.
func (t *Timer) advanceTo(now uint32) {
	if !t.running {
		return
	}

	diff := t.ctx.math.Diff(now, t.checkpoint)
	if diff <= 0 {
		return
	}

	// 64-bit intermediate: a delta spanning whole seconds is folded
	// directly into the seconds field, so the sub-second carry in
	// Duration.Advance is never asked to cover more than one second.
	ns := uint64(diff) * uint64(t.ctx.nsPerTick)
	if whole := ns / uint64(duration.NanosPerSecond); whole > 0 {
		t.elapsed.Seconds += uint32(whole)
		ns %= uint64(duration.NanosPerSecond)
	}
	t.elapsed = t.elapsed.Advance(uint32(ns))
	t.checkpoint = now
}

// startAndCheckpoint is the shared reset: checkpoint to the current
// sample, zero elapsed, set running. Caller guarantees t.ctx != nil.
func (t *Timer) startAndCheckpoint() {
	t.checkpoint = t.ctx.source.Ticks()
	t.running = true
	t.elapsed = duration.Duration{}
}

// normalize folds any excess nanoseconds into whole seconds so a
// caller-constructed interval can't violate the Duration invariant.
func normalize(d duration.Duration) duration.Duration {
	if d.Nanoseconds >= duration.NanosPerSecond {
		d.Seconds += d.Nanoseconds / duration.NanosPerSecond
		d.Nanoseconds %= duration.NanosPerSecond
	}
	return d
}
