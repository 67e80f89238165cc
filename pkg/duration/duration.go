package duration

import (
	"errors"
	"fmt"
	"time"
)

// Unit conversion constants.
const (
	// NanosPerSecond is the number of nanoseconds in one second.
	NanosPerSecond uint32 = 1_000_000_000

	// NanosPerMillisecond is the number of nanoseconds in one millisecond.
	NanosPerMillisecond uint32 = 1_000_000

	// NanosPerMicrosecond is the number of nanoseconds in one microsecond.
	NanosPerMicrosecond uint32 = 1_000

	// MillisPerSecond is the number of milliseconds in one second.
	MillisPerSecond uint32 = 1_000

	// MicrosPerSecond is the number of microseconds in one second.
	MicrosPerSecond uint32 = 1_000_000
)

// Duration arithmetic errors.
var (
	// ErrUnderflow is returned by Sub when the amount exceeds the duration.
	ErrUnderflow = errors.New("duration underflow")
)

// Duration is an exact elapsed or target interval as whole seconds plus a
// sub-second nanosecond remainder. The zero value is a zero interval.
//
// Invariant: Nanoseconds < NanosPerSecond after every operation. No floating
// point is involved at any stage.
type Duration struct {
	// Seconds is the whole-second component.
	Seconds uint32

	// Nanoseconds is the sub-second component, always below NanosPerSecond.
	Nanoseconds uint32
}

// FromSeconds returns a Duration of s whole seconds.
func FromSeconds(s uint32) Duration {
	return Duration{Seconds: s}
}

// FromMilliseconds returns a Duration of ms milliseconds.
func FromMilliseconds(ms uint32) Duration {
	return Duration{
		Seconds:     ms / MillisPerSecond,
		Nanoseconds: (ms % MillisPerSecond) * NanosPerMillisecond,
	}
}

// FromMicroseconds returns a Duration of us microseconds.
func FromMicroseconds(us uint32) Duration {
	return Duration{
		Seconds:     us / MicrosPerSecond,
		Nanoseconds: (us % MicrosPerSecond) * NanosPerMicrosecond,
	}
}

// FromNanoseconds returns a Duration of ns nanoseconds.
func FromNanoseconds(ns uint32) Duration {
	return Duration{
		Seconds:     ns / NanosPerSecond,
		Nanoseconds: ns % NanosPerSecond,
	}
}

// Advance returns the duration grown by ns nanoseconds.
//
// The carry is computed against the headroom to the next whole second so the
// nanosecond field cannot overflow mid-addition. A single call must represent
// less than one second of elapsed ticks; callers sweeping a tick counter must
// sweep often enough that modulus x nanoseconds-per-tick deltas stay below one
// second between samples.
func (d Duration) Advance(ns uint32) Duration {
	headroom := NanosPerSecond - d.Nanoseconds

	if ns < headroom {
		d.Nanoseconds += ns
	} else {
		d.Seconds++
		d.Nanoseconds = ns - headroom
	}
	return d
}

// Sub returns the duration reduced by amount, borrowing one second into the
// nanosecond field when needed. Returns ErrUnderflow if amount exceeds the
// duration; the receiver is returned unchanged in that case.
func (d Duration) Sub(amount Duration) (Duration, error) {
	if !d.GreaterEqual(amount) {
		return d, ErrUnderflow
	}

	d.Seconds -= amount.Seconds
	if d.Nanoseconds >= amount.Nanoseconds {
		d.Nanoseconds -= amount.Nanoseconds
	} else {
		d.Seconds--
		d.Nanoseconds += NanosPerSecond - amount.Nanoseconds
	}
	return d, nil
}

// GreaterEqual reports whether d >= other, seconds-major.
func (d Duration) GreaterEqual(other Duration) bool {
	if d.Seconds != other.Seconds {
		return d.Seconds > other.Seconds
	}
	return d.Nanoseconds >= other.Nanoseconds
}

// IsZero reports whether the duration is exactly zero.
func (d Duration) IsZero() bool {
	return d.Seconds == 0 && d.Nanoseconds == 0
}

// Std converts to a time.Duration. Lossless for any representable value.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Seconds)*time.Second + time.Duration(d.Nanoseconds)
}

// String returns the duration as "<seconds>.<nanoseconds>s" with the
// nanosecond field zero-padded to nine digits.
func (d Duration) String() string {
	return fmt.Sprintf("%d.%09ds", d.Seconds, d.Nanoseconds)
}
