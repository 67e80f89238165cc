package stimer_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stimer-project/stimer-go/pkg/duration"
	"github.com/stimer-project/stimer-go/pkg/log"
	"github.com/stimer-project/stimer-go/pkg/scenario"
	"github.com/stimer-project/stimer-go/pkg/timer"
)

// TestE2E_TraceRoundTrip drives a full session against a simulated counter,
// records a trace file, and verifies the recorded event stream.
func TestE2E_TraceRoundTrip(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "session.tlog")
	logger, err := log.NewFileLogger(tracePath)
	if err != nil {
		t.Fatalf("Failed to create trace logger: %v", err)
	}

	// 16-bit counter at 1ms per tick.
	counter := scenario.NewCounter(0xFFFF)
	ctx, err := timer.NewContext(counter, timer.Config{
		Modulus:     0xFFFF,
		NsPerTick:   1_000_000,
		EventLogger: logger,
	})
	if err != nil {
		t.Fatalf("Failed to create context: %v", err)
	}

	uptime := ctx.NewTimer()
	heartbeat := ctx.NewTimer()
	uptime.Start()
	heartbeat.ExpireAfterMilliseconds(50)

	counter.Advance(10)
	ctx.Sweep()
	if heartbeat.Expired() {
		t.Error("heartbeat expired after 10ms, interval is 50ms")
	}

	counter.Advance(40)
	ctx.Sweep()
	if !heartbeat.Expired() {
		t.Error("heartbeat not expired after 50ms")
	}

	heartbeat.AdvancePeriodic()
	if got := heartbeat.Elapsed(); !got.IsZero() {
		t.Errorf("heartbeat elapsed after periodic advance = %v, want 0", got)
	}

	uptime.Stop()
	if got, want := uptime.Elapsed(), duration.FromMilliseconds(50); got != want {
		t.Errorf("uptime elapsed = %v, want %v", got, want)
	}

	ctx.Close()
	if err := logger.Close(); err != nil {
		t.Fatalf("Failed to close trace logger: %v", err)
	}

	// Read the trace back and verify the event stream.
	reader, err := log.NewReader(tracePath)
	if err != nil {
		t.Fatalf("Failed to open trace: %v", err)
	}
	defer reader.Close()

	counts := make(map[log.Category]int)
	total := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Failed to read event: %v", err)
		}
		if event.ContextID != ctx.ID() {
			t.Errorf("event context ID = %s, want %s", event.ContextID, ctx.ID())
		}
		counts[event.Category]++
		total++
	}

	want := map[log.Category]int{
		log.CategoryContextCreated:  1,
		log.CategoryTimerAttached:   2,
		log.CategoryTimerStarted:    1,
		log.CategoryExpireSet:       1,
		log.CategorySweep:           2,
		log.CategoryPeriodicAdvance: 1,
		log.CategoryTimerStopped:    1,
		log.CategoryTimerDetached:   2,
		log.CategoryContextClosed:   1,
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("trace has %d %s events, want %d", counts[cat], cat, n)
		}
	}
	wantTotal := 0
	for _, n := range want {
		wantTotal += n
	}
	if total != wantTotal {
		t.Errorf("trace has %d events, want %d", total, wantTotal)
	}
}

// TestE2E_ScenarioReplay replays the shipped scenario files and requires
// every expectation to hold.
func TestE2E_ScenarioReplay(t *testing.T) {
	for _, name := range []string{"elapsed", "expire", "periodic"} {
		t.Run(name, func(t *testing.T) {
			def, err := scenario.Load(filepath.Join("scenarios", name+".yaml"))
			if err != nil {
				t.Fatalf("Failed to load scenario: %v", err)
			}

			results, err := scenario.NewRunner(def).Run(log.NoopLogger{})
			if err != nil {
				t.Fatalf("Scenario run failed: %v", err)
			}
			if len(results) == 0 {
				t.Fatal("scenario produced no checks")
			}
			for _, r := range results {
				if !r.Passed {
					t.Errorf("step %d timer %s: %s", r.Step, r.Timer, r.Detail)
				}
			}
		})
	}
}
