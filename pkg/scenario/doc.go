// Package scenario replays deterministic tick schedules against the timer
// engine.
//
// A scenario is a YAML document declaring a counter configuration, a set
// of timers, and a sequence of steps that advance a simulated counter,
// trigger engine operations, and assert expected timer state. Scenarios
// serve three consumers: the stimer-sim CLI plays them interactively,
// stimer-scengen turns them into generated test fixtures, and the
// package's own tests run the reference scenarios directly.
package scenario
