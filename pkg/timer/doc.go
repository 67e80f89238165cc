// Package timer implements logical timers driven by a raw, wrapping tick
// counter.
//
// The package targets environments with no wall clock and no interrupt
// timer service: all it needs is a caller-supplied Source that samples a
// free-running counter wrapping at a configured modulus. A Context binds
// one Source and one counter-math configuration (modulus,
// nanoseconds-per-tick) and owns a registry of Timers. Each Timer
// independently accumulates elapsed run time across start/stop cycles and
// can be checked against an expiration interval.
//
// # Driving the engine
//
// Callers either invoke Context.Sweep periodically, which samples the
// counter once and advances every running timer, or rely on the lazy
// advance built into per-timer queries (Elapsed, Expired), or both.
// Queries always bring the queried timer up to date first, so elapsed
// accounting is accurate at the moment of observation even if no sweep
// has run recently.
//
// Sweeps must be frequent enough that the counter cannot wrap more than
// once between samples of any running timer's checkpoint; a second wrap
// is indistinguishable from a shorter delta and loses time silently.
//
// # Concurrency
//
// Everything is single-threaded and synchronous: no locks, no goroutines,
// no blocking calls. Concurrent mutation of one Context or Timer requires
// external synchronization by the caller.
//
// # Error philosophy
//
// Operations on nil or detached objects no-op or return zeroed results
// rather than panic, mirroring the defensive posture of firmware code
// where a stale handle must never fault.
package timer
