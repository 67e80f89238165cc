package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/stimer-project/stimer-go/pkg/log"
)

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSON export shape with readable field names.
type jsonEvent struct {
	Timestamp       string `json:"timestamp"`
	ContextID       string `json:"context_id"`
	Category        string `json:"category"`
	TimerID         uint32 `json:"timer_id,omitempty"`
	Counter         uint32 `json:"counter,omitempty"`
	ElapsedSeconds  uint32 `json:"elapsed_seconds,omitempty"`
	ElapsedNanos    uint32 `json:"elapsed_nanos,omitempty"`
	IntervalSeconds uint32 `json:"interval_seconds,omitempty"`
	IntervalNanos   uint32 `json:"interval_nanos,omitempty"`
	Running         bool   `json:"running,omitempty"`
	SweptTimers     int    `json:"swept_timers,omitempty"`
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		je := jsonEvent{
			Timestamp:       event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			ContextID:       event.ContextID,
			Category:        event.Category.String(),
			TimerID:         event.TimerID,
			Counter:         event.Counter,
			ElapsedSeconds:  event.ElapsedSeconds,
			ElapsedNanos:    event.ElapsedNanos,
			IntervalSeconds: event.IntervalSeconds,
			IntervalNanos:   event.IntervalNanos,
			Running:         event.Running,
			SweptTimers:     event.SweptTimers,
		}
		if err := encoder.Encode(je); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"timestamp", "context_id", "category", "timer_id", "counter",
		"elapsed_seconds", "elapsed_nanos", "interval_seconds", "interval_nanos",
		"running", "swept_timers",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.ContextID,
			event.Category.String(),
			strconv.FormatUint(uint64(event.TimerID), 10),
			strconv.FormatUint(uint64(event.Counter), 10),
			strconv.FormatUint(uint64(event.ElapsedSeconds), 10),
			strconv.FormatUint(uint64(event.ElapsedNanos), 10),
			strconv.FormatUint(uint64(event.IntervalSeconds), 10),
			strconv.FormatUint(uint64(event.IntervalNanos), 10),
			strconv.FormatBool(event.Running),
			strconv.Itoa(event.SweptTimers),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
