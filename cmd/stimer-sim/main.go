// Command stimer-sim is an interactive timer simulator.
//
// It drives a timer context from a simulated hardware tick counter,
// letting you create timers, advance the counter, and inspect elapsed
// and expiry state from a command prompt. Scenario files can be
// replayed with the play command.
//
// Usage:
//
//	stimer-sim [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-modulus uint       Counter modulus, the maximum raw tick value (default 0xFFFFFFFF)
//	-ns-per-tick uint   Nanoseconds represented by one tick (default 1)
//	-trace string       Write a CBOR event trace to this file
//
// Examples:
//
//	# Simulate a 16-bit counter at 1ms per tick
//	stimer-sim -modulus 65535 -ns-per-tick 1000000
//
//	# Record a trace for later inspection with stimer-log
//	stimer-sim -trace session.tlog
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stimer-project/stimer-go/cmd/stimer-sim/interactive"
	"github.com/stimer-project/stimer-go/pkg/log"
	"github.com/stimer-project/stimer-go/pkg/scenario"
	"github.com/stimer-project/stimer-go/pkg/timer"
	"github.com/stimer-project/stimer-go/pkg/version"
)

// Config holds the simulator configuration.
type Config struct {
	ConfigFile string
	Modulus    uint32
	NsPerTick  uint32
	TracePath  string
}

// fileConfig is the YAML shape of a simulator configuration file.
type fileConfig struct {
	Modulus   uint32 `yaml:"modulus"`
	NsPerTick uint32 `yaml:"ns_per_tick"`
	Trace     string `yaml:"trace"`
}

var (
	config    Config
	modulus   uint // Temp vars for flag parsing
	nsPerTick uint
)

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.UintVar(&modulus, "modulus", 0xFFFFFFFF, "Counter modulus, the maximum raw tick value")
	flag.UintVar(&nsPerTick, "ns-per-tick", 1, "Nanoseconds represented by one tick")
	flag.StringVar(&config.TracePath, "trace", "", "Write a CBOR event trace to this file")
}

func main() {
	flag.Parse()
	config.Modulus = uint32(modulus)
	config.NsPerTick = uint32(nsPerTick)

	if config.ConfigFile != "" {
		if err := loadConfigFile(config.ConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	if config.NsPerTick == 0 {
		fmt.Fprintln(os.Stderr, "Invalid configuration: ns-per-tick must be positive")
		os.Exit(1)
	}

	events := log.Logger(log.NoopLogger{})
	if config.TracePath != "" {
		fl, err := log.NewFileLogger(config.TracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open trace file: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		events = fl
	}

	counter := scenario.NewCounter(config.Modulus)
	ctx, err := timer.NewContext(counter, timer.Config{
		Modulus:     config.Modulus,
		NsPerTick:   config.NsPerTick,
		EventLogger: events,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create timer context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	fmt.Printf("Stimer Simulator %s\n", version.Current)
	fmt.Println("================")
	fmt.Printf("Modulus:     %d (0x%X)\n", config.Modulus, config.Modulus)
	fmt.Printf("Ns per tick: %d\n", config.NsPerTick)
	if config.TracePath != "" {
		fmt.Printf("Trace:       %s\n", config.TracePath)
	}

	session, err := interactive.New(ctx, counter, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start interactive session: %v\n", err)
		os.Exit(1)
	}
	session.Run()
}

// loadConfigFile merges settings from a YAML file into the configuration.
// Flags that were left at their defaults take the file's values.
func loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Modulus != 0 && config.Modulus == 0xFFFFFFFF {
		config.Modulus = fc.Modulus
	}
	if fc.NsPerTick != 0 && config.NsPerTick == 1 {
		config.NsPerTick = fc.NsPerTick
	}
	if fc.Trace != "" && config.TracePath == "" {
		config.TracePath = fc.Trace
	}
	return nil
}
