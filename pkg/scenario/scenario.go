package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stimer-project/stimer-go/pkg/duration"
)

// Timer modes.
const (
	// ModeElapsed tracks elapsed run time only.
	ModeElapsed = "elapsed"

	// ModeExpire tracks elapsed time against an expire interval.
	ModeExpire = "expire"
)

// Definition is a deterministic tick schedule with expected timer states,
// loaded from YAML.
type Definition struct {
	// Name identifies the scenario in output and generated fixtures.
	Name string `yaml:"name"`

	// Modulus is the maximum counter value before wraparound.
	Modulus uint32 `yaml:"modulus"`

	// NsPerTick converts one counter increment to nanoseconds.
	NsPerTick uint32 `yaml:"ns_per_tick"`

	// Timers declares the timers created at tick zero.
	Timers []TimerDef `yaml:"timers"`

	// Steps is the tick schedule with interleaved expectations.
	Steps []Step `yaml:"steps"`
}

// TimerDef declares one timer in a scenario.
type TimerDef struct {
	// Name is the scenario-local timer name.
	Name string `yaml:"name"`

	// Mode is "elapsed" (started, no interval) or "expire" (interval set).
	Mode string `yaml:"mode"`

	// Interval is the expire interval for "expire" mode, in exactly one unit.
	Interval Interval `yaml:"interval,omitempty"`
}

// Interval expresses an expire interval in exactly one unit.
type Interval struct {
	Seconds      uint32 `yaml:"seconds,omitempty"`
	Milliseconds uint32 `yaml:"milliseconds,omitempty"`
	Microseconds uint32 `yaml:"microseconds,omitempty"`
	Nanoseconds  uint32 `yaml:"nanoseconds,omitempty"`
}

// set reports how many unit fields are non-zero.
func (i Interval) set() int {
	n := 0
	for _, v := range []uint32{i.Seconds, i.Milliseconds, i.Microseconds, i.Nanoseconds} {
		if v != 0 {
			n++
		}
	}
	return n
}

// Duration converts the interval to canonical form.
func (i Interval) Duration() duration.Duration {
	switch {
	case i.Seconds != 0:
		return duration.FromSeconds(i.Seconds)
	case i.Milliseconds != 0:
		return duration.FromMilliseconds(i.Milliseconds)
	case i.Microseconds != 0:
		return duration.FromMicroseconds(i.Microseconds)
	default:
		return duration.FromNanoseconds(i.Nanoseconds)
	}
}

// Step advances the counter and optionally checks timer state.
type Step struct {
	// Ticks advances the counter by this many increments.
	Ticks int `yaml:"ticks"`

	// Sweep runs a context-wide sweep after advancing.
	Sweep bool `yaml:"sweep,omitempty"`

	// Stop names timers to stop after advancing.
	Stop []string `yaml:"stop,omitempty"`

	// AdvancePeriodic names timers to advance periodically.
	AdvancePeriodic []string `yaml:"advance_periodic,omitempty"`

	// Restart names timers to restart.
	Restart []string `yaml:"restart,omitempty"`

	// Expect lists timer state expectations checked at the end of the step.
	Expect []Expectation `yaml:"expect,omitempty"`
}

// Expectation is a checked assertion about one timer's state.
type Expectation struct {
	// Timer names the timer under check.
	Timer string `yaml:"timer"`

	// Seconds/Nanoseconds, when set, assert the exact elapsed duration.
	Seconds     *uint32 `yaml:"seconds,omitempty"`
	Nanoseconds *uint32 `yaml:"nanoseconds,omitempty"`

	// Expired, when set, asserts the expiration state.
	Expired *bool `yaml:"expired,omitempty"`
}

// U32 returns a pointer to v, for building expectations in code.
func U32(v uint32) *uint32 {
	return &v
}

// Bool returns a pointer to b, for building expectations in code.
func Bool(b bool) *bool {
	return &b
}

// Parse parses a scenario definition from YAML bytes.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load loads and parses a scenario definition from a file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks internal consistency of the definition.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if d.Modulus == 0 {
		return fmt.Errorf("scenario %q: modulus must be positive", d.Name)
	}
	if d.NsPerTick == 0 {
		return fmt.Errorf("scenario %q: ns_per_tick must be positive", d.Name)
	}
	if len(d.Timers) == 0 {
		return fmt.Errorf("scenario %q: no timers declared", d.Name)
	}

	names := make(map[string]bool, len(d.Timers))
	for _, td := range d.Timers {
		if td.Name == "" {
			return fmt.Errorf("scenario %q: timer with empty name", d.Name)
		}
		if names[td.Name] {
			return fmt.Errorf("scenario %q: duplicate timer %q", d.Name, td.Name)
		}
		names[td.Name] = true

		switch td.Mode {
		case ModeElapsed:
			if td.Interval.set() != 0 {
				return fmt.Errorf("scenario %q: timer %q: elapsed mode takes no interval", d.Name, td.Name)
			}
		case ModeExpire:
			if td.Interval.set() != 1 {
				return fmt.Errorf("scenario %q: timer %q: expire mode needs exactly one interval unit", d.Name, td.Name)
			}
		default:
			return fmt.Errorf("scenario %q: timer %q: unknown mode %q", d.Name, td.Name, td.Mode)
		}
	}

	for i, step := range d.Steps {
		if step.Ticks < 0 {
			return fmt.Errorf("scenario %q: step %d: negative ticks", d.Name, i)
		}
		for _, group := range [][]string{step.Stop, step.AdvancePeriodic, step.Restart} {
			for _, name := range group {
				if !names[name] {
					return fmt.Errorf("scenario %q: step %d: unknown timer %q", d.Name, i, name)
				}
			}
		}
		for _, exp := range step.Expect {
			if !names[exp.Timer] {
				return fmt.Errorf("scenario %q: step %d: expectation on unknown timer %q", d.Name, i, exp.Timer)
			}
			if exp.Seconds == nil && exp.Nanoseconds == nil && exp.Expired == nil {
				return fmt.Errorf("scenario %q: step %d: empty expectation on %q", d.Name, i, exp.Timer)
			}
		}
	}
	return nil
}
