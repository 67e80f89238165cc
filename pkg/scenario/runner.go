package scenario

import (
	"fmt"

	"github.com/stimer-project/stimer-go/pkg/log"
	"github.com/stimer-project/stimer-go/pkg/timer"
)

// Result is the outcome of one checked expectation.
type Result struct {
	// Step is the index of the step that checked the expectation.
	Step int

	// Timer is the scenario-local timer name.
	Timer string

	// Passed reports whether the expectation held.
	Passed bool

	// Detail describes the mismatch for failed expectations.
	Detail string
}

// Counter is a simulated free-running tick counter wrapping at a modulus.
type Counter struct {
	value   uint32
	modulus uint32
}

// NewCounter returns a counter at zero wrapping after modulus.
func NewCounter(modulus uint32) *Counter {
	return &Counter{modulus: modulus}
}

// Ticks returns the current counter value.
func (c *Counter) Ticks() uint32 {
	return c.value
}

// Advance moves the counter forward by n increments, wrapping as needed.
func (c *Counter) Advance(n int) {
	states := uint64(c.modulus) + 1
	c.value = uint32((uint64(c.value) + uint64(n)) % states)
}

// Runner replays a scenario definition against a real timer context.
type Runner struct {
	def *Definition
}

// NewRunner creates a Runner for the definition.
func NewRunner(def *Definition) *Runner {
	return &Runner{def: def}
}

// Run executes the scenario and returns one Result per checked
// expectation, in step order. An optional event logger captures the
// engine trace of the replay.
func (r *Runner) Run(events log.Logger) ([]Result, error) {
	counter := NewCounter(r.def.Modulus)

	ctx, err := timer.NewContext(counter, timer.Config{
		Modulus:     r.def.Modulus,
		NsPerTick:   r.def.NsPerTick,
		EventLogger: events,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", r.def.Name, err)
	}
	defer ctx.Close()

	timers := make(map[string]*timer.Timer, len(r.def.Timers))
	for _, td := range r.def.Timers {
		tm := ctx.NewTimer()
		if tm == nil {
			return nil, fmt.Errorf("scenario %q: allocating timer %q", r.def.Name, td.Name)
		}
		switch td.Mode {
		case ModeElapsed:
			tm.Start()
		case ModeExpire:
			tm.ExpireAfter(td.Interval.Duration())
		}
		timers[td.Name] = tm
	}

	var results []Result
	for i, step := range r.def.Steps {
		counter.Advance(step.Ticks)
		if step.Sweep {
			ctx.Sweep()
		}
		for _, name := range step.Stop {
			timers[name].Stop()
		}
		for _, name := range step.AdvancePeriodic {
			timers[name].AdvancePeriodic()
		}
		for _, name := range step.Restart {
			timers[name].Restart()
		}

		for _, exp := range step.Expect {
			results = append(results, check(i, exp, timers[exp.Timer]))
		}
	}
	return results, nil
}

// check evaluates one expectation against a timer's live state.
func check(step int, exp Expectation, tm *timer.Timer) Result {
	res := Result{Step: step, Timer: exp.Timer, Passed: true}

	if exp.Seconds != nil || exp.Nanoseconds != nil {
		elapsed := tm.Elapsed()
		if exp.Seconds != nil && elapsed.Seconds != *exp.Seconds {
			res.Passed = false
			res.Detail = fmt.Sprintf("elapsed seconds = %d, want %d", elapsed.Seconds, *exp.Seconds)
			return res
		}
		if exp.Nanoseconds != nil && elapsed.Nanoseconds != *exp.Nanoseconds {
			res.Passed = false
			res.Detail = fmt.Sprintf("elapsed nanoseconds = %d, want %d", elapsed.Nanoseconds, *exp.Nanoseconds)
			return res
		}
	}

	if exp.Expired != nil {
		if got := tm.Expired(); got != *exp.Expired {
			res.Passed = false
			res.Detail = fmt.Sprintf("expired = %v, want %v", got, *exp.Expired)
		}
	}
	return res
}
