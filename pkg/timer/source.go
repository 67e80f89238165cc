package timer

// Source supplies raw samples of a free-running tick counter.
//
// Implementations must return a monotonically advancing value modulo the
// context's configured modulus, must not block, and must have no side
// effects beyond reading the counter. The engine calls Ticks synchronously
// from whatever goroutine invokes timer operations.
type Source interface {
	// Ticks returns the current raw counter value.
	Ticks() uint32
}

// SourceFunc adapts a plain function to the Source interface. Closure state
// takes the place of an opaque hint pointer.
type SourceFunc func() uint32

// Ticks returns f().
func (f SourceFunc) Ticks() uint32 {
	return f()
}

// Compile-time interface satisfaction check.
var _ Source = SourceFunc(nil)
