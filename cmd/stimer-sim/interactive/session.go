// Package interactive provides the interactive command-line interface
// for the stimer simulator.
package interactive

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/stimer-project/stimer-go/pkg/duration"
	"github.com/stimer-project/stimer-go/pkg/log"
	"github.com/stimer-project/stimer-go/pkg/scenario"
	"github.com/stimer-project/stimer-go/pkg/timer"
)

// Session handles interactive mode for stimer-sim.
type Session struct {
	ctx     *timer.Context
	counter *scenario.Counter
	events  log.Logger
	rl      *readline.Instance

	timers map[string]*timer.Timer
}

// New creates a new interactive session around the given context and counter.
func New(ctx *timer.Context, counter *scenario.Counter, events log.Logger) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stimer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Session{
		ctx:     ctx,
		counter: counter,
		events:  events,
		rl:      rl,
		timers:  make(map[string]*timer.Timer),
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Session) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Session) Run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "new", "n":
			s.cmdNew(args)

		case "start":
			s.cmdStart(args)

		case "stop":
			s.cmdStop(args)

		case "tick", "t":
			s.cmdTick(args)

		case "sweep", "sw":
			s.cmdSweep()

		case "elapsed", "e":
			s.cmdElapsed(args)

		case "expire":
			s.cmdExpire(args)

		case "expired":
			s.cmdExpired(args)

		case "advance", "adv":
			s.cmdAdvance(args)

		case "restart":
			s.cmdRestart(args)

		case "detach":
			s.cmdDetach(args)

		case "status":
			s.cmdStatus()

		case "play":
			s.cmdPlay(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Stimer Simulator Commands:
  Timers:
    new <name>            - Create a timer
    start <name>          - Start (or reset) a timer
    stop <name>           - Stop a timer, freezing its elapsed time
    expire <name> <dur>   - Start a timer that expires after <dur> (e.g. 2ms, 1.5s)
    restart <name>        - Reset a running timer to zero
    advance <name>        - Periodic advance: consume one interval if expired
    detach <name>         - Detach a timer from the context

  Counter:
    tick <n>              - Advance the tick counter by n
    sweep                 - Sample the counter and advance all running timers

  Inspection:
    elapsed <name>        - Show a timer's elapsed time
    expired <name>        - Check whether a timer has expired
    status                - Show context and all timers

  Scenarios:
    play <file>           - Run a scenario YAML file

  General:
    help                  - Show this help
    quit                  - Exit simulator`)
}

// lookup resolves a timer by name, printing an error on miss.
func (s *Session) lookup(name string) *timer.Timer {
	t, ok := s.timers[name]
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown timer: %s (use 'status' to list timers)\n", name)
		return nil
	}
	return t
}

func (s *Session) cmdNew(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: new <name>")
		return
	}
	name := args[0]
	if _, exists := s.timers[name]; exists {
		fmt.Fprintf(s.rl.Stdout(), "Timer %s already exists\n", name)
		return
	}

	t := s.ctx.NewTimer()
	if t == nil {
		fmt.Fprintln(s.rl.Stdout(), "Failed to create timer (context closed?)")
		return
	}
	s.timers[name] = t
	fmt.Fprintf(s.rl.Stdout(), "Created timer %s (id %d)\n", name, t.ID())
}

func (s *Session) cmdStart(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: start <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	t.Start()
	fmt.Fprintf(s.rl.Stdout(), "Timer %s started at counter %d\n", args[0], s.counter.Ticks())
}

func (s *Session) cmdStop(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: stop <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	t.Stop()
	fmt.Fprintf(s.rl.Stdout(), "Timer %s stopped, elapsed %s\n", args[0], t.Elapsed())
}

func (s *Session) cmdTick(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: tick <n>")
		return
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid tick count: %v\n", err)
		return
	}
	s.counter.Advance(int(n))
	fmt.Fprintf(s.rl.Stdout(), "Counter is now %d\n", s.counter.Ticks())
}

func (s *Session) cmdSweep() {
	s.ctx.Sweep()
	fmt.Fprintf(s.rl.Stdout(), "Swept at counter %d\n", s.counter.Ticks())
}

func (s *Session) cmdElapsed(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: elapsed <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s elapsed: %s\n", args[0], t.Elapsed())
}

func (s *Session) cmdExpire(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: expire <name> <duration>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: expire heartbeat 2ms")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}

	d, err := parseInterval(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid duration: %v\n", err)
		return
	}

	t.ExpireAfter(d)
	fmt.Fprintf(s.rl.Stdout(), "Timer %s expires after %s\n", args[0], d)
}

func (s *Session) cmdExpired(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: expired <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s expired: %v\n", args[0], t.Expired())
}

func (s *Session) cmdAdvance(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: advance <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	t.AdvancePeriodic()
	fmt.Fprintf(s.rl.Stdout(), "%s elapsed after advance: %s\n", args[0], t.Elapsed())
}

func (s *Session) cmdRestart(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: restart <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	t.Restart()
	fmt.Fprintf(s.rl.Stdout(), "Timer %s restarted\n", args[0])
}

func (s *Session) cmdDetach(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: detach <name>")
		return
	}
	t := s.lookup(args[0])
	if t == nil {
		return
	}
	t.Detach()
	delete(s.timers, args[0])
	fmt.Fprintf(s.rl.Stdout(), "Timer %s detached\n", args[0])
}

func (s *Session) cmdStatus() {
	fmt.Fprintln(s.rl.Stdout(), "\nSimulator Status")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(s.rl.Stdout(), "  Context ID:   %s\n", s.ctx.ID())
	fmt.Fprintf(s.rl.Stdout(), "  Modulus:      %d (0x%X)\n", s.ctx.Modulus(), s.ctx.Modulus())
	fmt.Fprintf(s.rl.Stdout(), "  Ns per tick:  %d\n", s.ctx.NsPerTick())
	fmt.Fprintf(s.rl.Stdout(), "  Counter:      %d\n", s.counter.Ticks())
	fmt.Fprintf(s.rl.Stdout(), "  Timers:       %d attached\n", s.ctx.Len())

	names := make([]string, 0, len(s.timers))
	for name := range s.timers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := s.timers[name]
		state := "stopped"
		if t.Running() {
			state = "running"
		}
		if !t.Attached() {
			state = "detached"
		}
		fmt.Fprintf(s.rl.Stdout(), "    %s (id %d): %s, elapsed %s", name, t.ID(), state, t.Elapsed())
		if interval := t.ExpireInterval(); !interval.IsZero() {
			fmt.Fprintf(s.rl.Stdout(), ", expires after %s (expired: %v)", interval, t.Expired())
		}
		fmt.Fprintln(s.rl.Stdout())
	}
	fmt.Fprintln(s.rl.Stdout())
}

// cmdPlay loads and runs a scenario file against a fresh context.
func (s *Session) cmdPlay(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: play <scenario.yaml>")
		return
	}

	def, err := scenario.Load(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to load scenario: %v\n", err)
		return
	}

	runner := scenario.NewRunner(def)
	results, err := runner.Run(s.events)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Scenario failed: %v\n", err)
		return
	}

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
			continue
		}
		fmt.Fprintf(s.rl.Stdout(), "  FAIL step %d timer %s: %s\n", r.Step, r.Timer, r.Detail)
	}
	fmt.Fprintf(s.rl.Stdout(), "Scenario %s: %d/%d checks passed\n", def.Name, passed, len(results))
}

// parseInterval converts a Go duration string into a timer interval.
func parseInterval(s string) (duration.Duration, error) {
	std, err := time.ParseDuration(s)
	if err != nil {
		return duration.Duration{}, err
	}
	if std <= 0 {
		return duration.Duration{}, fmt.Errorf("duration must be positive: %s", s)
	}

	ns := std.Nanoseconds()
	return duration.Duration{
		Seconds:     uint32(ns / int64(duration.NanosPerSecond)),
		Nanoseconds: uint32(ns % int64(duration.NanosPerSecond)),
	}, nil
}
