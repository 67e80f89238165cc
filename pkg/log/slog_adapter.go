package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes timer engine events to an slog.Logger.
// Useful for development when you want to see engine events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("ctx_id", event.ContextID),
		slog.String("category", event.Category.String()),
	}

	if event.TimerID != 0 {
		attrs = append(attrs, slog.Uint64("timer_id", uint64(event.TimerID)))
	}

	switch event.Category {
	case CategorySweep:
		attrs = append(attrs,
			slog.Uint64("counter", uint64(event.Counter)),
			slog.Int("swept", event.SweptTimers),
		)
	case CategoryContextCreated, CategoryContextClosed:
		// Context identity only.
	default:
		attrs = append(attrs,
			slog.Uint64("counter", uint64(event.Counter)),
			slog.Uint64("elapsed_s", uint64(event.ElapsedSeconds)),
			slog.Uint64("elapsed_ns", uint64(event.ElapsedNanos)),
			slog.Bool("running", event.Running),
		)
		if event.IntervalSeconds != 0 || event.IntervalNanos != 0 {
			attrs = append(attrs,
				slog.Uint64("interval_s", uint64(event.IntervalSeconds)),
				slog.Uint64("interval_ns", uint64(event.IntervalNanos)),
			)
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "timer event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
