package countermath

// Math computes forward differences between samples of a free-running
// counter that wraps at a configured modulus. The counter ranges over
// [0, modulus] inclusive, so modulus+1 states are representable before it
// wraps back to zero.
//
// The zero value has modulus 0 (a one-state counter) and is not useful;
// construct with New.
type Math struct {
	modulus uint32
}

// New returns a Math for a counter that wraps after modulus.
func New(modulus uint32) Math {
	return Math{modulus: modulus}
}

// Modulus returns the configured maximum counter value.
func (m Math) Modulus() uint32 {
	return m.modulus
}

// Diff returns the forward distance traveled from previous to now.
//
// When now < previous the counter is presumed to have wrapped past the
// modulus exactly once. Identical samples yield zero; the caller must treat
// any non-positive result as no forward progress.
func (m Math) Diff(now, previous uint32) int64 {
	if now >= previous {
		return int64(now) - int64(previous)
	}
	return int64(m.modulus) + 1 - int64(previous) + int64(now)
}
