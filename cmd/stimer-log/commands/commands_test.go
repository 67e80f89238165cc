package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stimer-project/stimer-go/pkg/log"
)

// writeTestTrace writes a small trace file and returns its path.
func writeTestTrace(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.tlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	base := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: base, ContextID: "ctx-aaaa0000", Category: log.CategoryContextCreated},
		{Timestamp: base.Add(time.Millisecond), ContextID: "ctx-aaaa0000", Category: log.CategoryTimerAttached, TimerID: 1},
		{Timestamp: base.Add(2 * time.Millisecond), ContextID: "ctx-aaaa0000", Category: log.CategoryTimerStarted, TimerID: 1, Running: true},
		{Timestamp: base.Add(3 * time.Millisecond), ContextID: "ctx-aaaa0000", Category: log.CategorySweep, Counter: 10, SweptTimers: 1},
		{Timestamp: base.Add(4 * time.Millisecond), ContextID: "ctx-aaaa0000", Category: log.CategorySweep, Counter: 20, SweptTimers: 1},
		{Timestamp: base.Add(5 * time.Millisecond), ContextID: "ctx-aaaa0000", Category: log.CategoryTimerStopped, TimerID: 1, ElapsedNanos: 20_000_000},
	}
	for _, e := range events {
		logger.Log(e)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile %s failed: %v", path, err)
	}
	return string(data)
}

func TestRunView(t *testing.T) {
	path := writeTestTrace(t)

	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"CONTEXT_CREATED", "TIMER_STARTED", "SWEEP", "TIMER_STOPPED", "6 events"} {
		if !strings.Contains(out, want) {
			t.Errorf("view output missing %q", want)
		}
	}
}

func TestRunViewCategoryFilter(t *testing.T) {
	path := writeTestTrace(t)

	sweep := log.CategorySweep
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Category: &sweep}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2 events") {
		t.Errorf("expected 2 sweep events, got:\n%s", out)
	}
	if strings.Contains(out, "TIMER_STARTED") {
		t.Error("category filter leaked non-sweep events")
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := writeTestTrace(t)
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data := readFile(t, out)
	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d JSONL lines, want 6", len(lines))
	}

	var first jsonEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.Category != "CONTEXT_CREATED" || first.ContextID != "ctx-aaaa0000" {
		t.Errorf("first event = %+v", first)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeTestTrace(t)
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(readFile(t, out)), "\n")
	if len(lines) != 7 { // header + 6 events
		t.Fatalf("got %d CSV lines, want 7", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,context_id,category") {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeTestTrace(t)
	if err := RunExport(path, "xml", ""); err == nil {
		t.Error("RunExport accepted unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := writeTestTrace(t)
	out := filepath.Join(t.TempDir(), "filtered.tlog")

	var buf bytes.Buffer
	opts := FilterOptions{Output: out, Category: "SWEEP"}
	if err := RunFilter(path, opts, &buf); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Filtered 2 events") {
		t.Errorf("unexpected filter summary: %s", buf.String())
	}

	// The output file must itself be a readable trace.
	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader on filtered file failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.Category != log.CategorySweep {
		t.Errorf("filtered event category = %v", event.Category)
	}
}

func TestRunFilterBadTimerID(t *testing.T) {
	path := writeTestTrace(t)
	opts := FilterOptions{Output: filepath.Join(t.TempDir(), "o.tlog"), TimerID: "banana"}
	if err := RunFilter(path, opts, &bytes.Buffer{}); err == nil {
		t.Error("RunFilter accepted a non-numeric timer ID")
	}
}

func TestRunStats(t *testing.T) {
	path := writeTestTrace(t)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Total events: 6", "SWEEP", "Contexts: 1", "1 timers, 2 sweeps"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestRunStatsMissingFile(t *testing.T) {
	if err := RunStats(filepath.Join(t.TempDir(), "absent.tlog"), &bytes.Buffer{}); err == nil {
		t.Error("RunStats accepted a missing file")
	}
}
