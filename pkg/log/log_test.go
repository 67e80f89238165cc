package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	original := Event{
		Timestamp:       ts,
		ContextID:       "abc12345-def6-7890-abcd-ef1234567890",
		Category:        CategoryExpireSet,
		TimerID:         3,
		Counter:         0xFE,
		ElapsedSeconds:  1,
		ElapsedNanos:    1_000_000,
		IntervalSeconds: 2,
		IntervalNanos:   500,
		Running:         true,
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	decoded.Timestamp = original.Timestamp
	if decoded != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryContextCreated, "CONTEXT_CREATED"},
		{CategoryContextClosed, "CONTEXT_CLOSED"},
		{CategoryTimerAttached, "TIMER_ATTACHED"},
		{CategoryTimerDetached, "TIMER_DETACHED"},
		{CategoryTimerStarted, "TIMER_STARTED"},
		{CategoryTimerStopped, "TIMER_STOPPED"},
		{CategoryExpireSet, "EXPIRE_SET"},
		{CategoryTimerRestarted, "TIMER_RESTARTED"},
		{CategoryPeriodicAdvance, "PERIODIC_ADVANCE"},
		{CategorySweep, "SWEEP"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for c := CategoryContextCreated; c <= CategorySweep; c++ {
		parsed, ok := ParseCategory(c.String())
		if !ok || parsed != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), parsed, ok)
		}
	}
	if _, ok := ParseCategory("NOT_A_CATEGORY"); ok {
		t.Error("ParseCategory accepted an unknown name")
	}
}

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		ContextID: "ctx-123",
		Category:  CategorySweep,
		Counter:   42,
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("trace file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.ContextID != event.ContextID {
		t.Errorf("ContextID: got %q, want %q", decoded.ContextID, event.ContextID)
	}
	if decoded.Counter != event.Counter {
		t.Errorf("Counter: got %d, want %d", decoded.Counter, event.Counter)
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const writers = 4
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					ContextID: "ctx-concurrent",
					Category:  CategorySweep,
					TimerID:   uint32(id),
				})
			}
		}(w)
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != writers*perWriter {
		t.Errorf("read %d events, want %d", count, writers*perWriter)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewFileLogger(filepath.Join(dir, "test.tlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close must not panic.
	logger.Log(Event{ContextID: "after-close"})
}

func TestReaderFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	categories := []Category{
		CategoryTimerStarted,
		CategorySweep,
		CategoryTimerStopped,
		CategorySweep,
		CategorySweep,
	}
	for i, cat := range categories {
		logger.Log(Event{
			Timestamp: time.Now(),
			ContextID: "ctx-filter",
			Category:  cat,
			TimerID:   uint32(i),
		})
	}
	logger.Close()

	want := CategorySweep
	reader, err := NewFilteredReader(path, Filter{Category: &want})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if event.Category != CategorySweep {
			t.Errorf("filtered reader returned category %v", event.Category)
		}
		count++
	}
	if count != 3 {
		t.Errorf("filtered reader returned %d events, want 3", count)
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b countingLogger

	multi := NewMultiLogger(&a, &b)
	multi.Log(Event{Category: CategorySweep})
	multi.Log(Event{Category: CategoryTimerStarted})

	if a.count != 2 || b.count != 2 {
		t.Errorf("counts = %d, %d; want 2, 2", a.count, b.count)
	}
}

type countingLogger struct {
	count int
}

func (c *countingLogger) Log(Event) { c.count++ }
