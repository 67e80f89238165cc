// Package countermath provides wraparound-safe difference arithmetic for
// raw, free-running tick counters.
//
// Hardware tick counters (8/16/24/32-bit peripheral counters) wrap at a
// fixed maximum and carry no notion of absolute time. Converting two raw
// samples into an elapsed tick count requires knowing that maximum: if the
// later sample is numerically smaller, the counter wrapped in between and
// the distance runs through the modulus. This package isolates exactly that
// computation so the timer engine never does modular arithmetic inline.
package countermath
