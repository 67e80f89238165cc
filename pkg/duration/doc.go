// Package duration implements the exact seconds+nanoseconds interval type
// used by the timer engine.
//
// # Representation
//
// A Duration is a pair of unsigned 32-bit fields: whole seconds and a
// sub-second nanosecond remainder. The nanosecond field is always below one
// billion after any operation completes; callers never observe a
// denormalized value. There is no floating point anywhere, so accumulation
// over long runs loses no precision.
//
// # Overflow discipline
//
// Advance computes the headroom to the next whole second before adding, so
// the nanosecond field cannot overflow during the addition itself. The carry
// handles at most one second per call: a single Advance must represent less
// than one second of elapsed time. Timer engine sweeps bound this by
// construction as long as the counter is sampled often enough relative to
// its modulus and tick scale.
//
// Sub checks its precondition explicitly and returns ErrUnderflow instead of
// letting unsigned wraparound fabricate a huge interval.
package duration
