// Package commands implements the stimer-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/stimer-project/stimer-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category *log.Category
	TimerID  *uint32
}

// RunView reads the trace file and writes a human-readable listing to w.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	logFilter := log.Filter{
		Category: filter.Category,
		TimerID:  filter.TimerID,
	}

	reader, err := log.NewFilteredReader(path, logFilter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(w, event)
		count++
	}

	fmt.Fprintf(w, "%d events\n", count)
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [ctx:id] CATEGORY
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [ctx:%s] %s\n", ts, shortenContextID(event.ContextID), event.Category)

	switch event.Category {
	case log.CategoryContextCreated, log.CategoryContextClosed:
		// Context identity only, nothing more to show.
	case log.CategorySweep:
		fmt.Fprintf(w, "  Counter: %d  Swept: %d\n", event.Counter, event.SweptTimers)
	default:
		fmt.Fprintf(w, "  Timer: %d  Counter: %d  Running: %v\n",
			event.TimerID, event.Counter, event.Running)
		fmt.Fprintf(w, "  Elapsed: %d.%09ds\n", event.ElapsedSeconds, event.ElapsedNanos)
		if event.IntervalSeconds != 0 || event.IntervalNanos != 0 {
			fmt.Fprintf(w, "  Interval: %d.%09ds\n", event.IntervalSeconds, event.IntervalNanos)
		}
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenContextID returns the first 8 characters of the context ID.
func shortenContextID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category flag value (case-sensitive String form).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("unknown category: %s", s)
	}
	return c, nil
}
