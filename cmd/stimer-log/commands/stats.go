package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/stimer-project/stimer-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Contexts         map[string]*ContextStats
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// ContextStats holds statistics for a single timer context.
type ContextStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Sweeps    int
	Timers    map[uint32]bool
}

// RunStats analyzes the trace file and prints statistics to w.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Contexts:         make(map[string]*ContextStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		ctx, ok := stats.Contexts[event.ContextID]
		if !ok {
			ctx = &ContextStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Timers:    make(map[uint32]bool),
			}
			stats.Contexts[event.ContextID] = ctx
		}
		ctx.Events++
		if event.Timestamp.After(ctx.LastSeen) {
			ctx.LastSeen = event.Timestamp
		}
		if event.TimerID != 0 {
			ctx.Timers[event.TimerID] = true
		}
		if event.Category == log.CategorySweep {
			ctx.Sweeps++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)

	if stats.TotalEvents == 0 {
		return
	}

	fmt.Fprintf(w, "Time range:   %s - %s (%s)\n",
		stats.TimeRange.Start.UTC().Format(time.RFC3339),
		stats.TimeRange.End.UTC().Format(time.RFC3339),
		stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))

	fmt.Fprintln(w, "\nEvents by category:")
	categories := make([]log.Category, 0, len(stats.EventsByCategory))
	for c := range stats.EventsByCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	for _, c := range categories {
		fmt.Fprintf(w, "  %-18s %d\n", c.String(), stats.EventsByCategory[c])
	}

	fmt.Fprintf(w, "\nContexts: %d\n", len(stats.Contexts))
	ids := make([]string, 0, len(stats.Contexts))
	for id := range stats.Contexts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		ctx := stats.Contexts[id]
		fmt.Fprintf(w, "  %s: %d events, %d timers, %d sweeps\n",
			shortenContextID(id), ctx.Events, len(ctx.Timers), ctx.Sweeps)
	}
}
