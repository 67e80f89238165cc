package main

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stimer-project/stimer-go/pkg/scenario"
)

func heartbeatDef() *scenario.Definition {
	return &scenario.Definition{
		Name:      "heartbeat-expiry",
		Modulus:   0xFF,
		NsPerTick: 1_000_000,
		Timers: []scenario.TimerDef{
			{Name: "beat", Mode: scenario.ModeExpire, Interval: scenario.Interval{Milliseconds: 2}},
			{Name: "total", Mode: scenario.ModeElapsed},
		},
		Steps: []scenario.Step{
			{Ticks: 1, Sweep: true, Expect: []scenario.Expectation{
				{Timer: "beat", Expired: scenario.Bool(false)},
			}},
			{Ticks: 1, Sweep: true, AdvancePeriodic: []string{"beat"}, Expect: []scenario.Expectation{
				{Timer: "beat", Seconds: scenario.U32(0), Nanoseconds: scenario.U32(0)},
				{Timer: "total", Nanoseconds: scenario.U32(2_000_000)},
			}},
			{Ticks: 1, Stop: []string{"total"}, Restart: []string{"beat"}},
		},
	}
}

func TestGenerateFixture(t *testing.T) {
	output, err := Generate(heartbeatDef(), "fixtures")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "package fixtures")
	mustContain(t, output, "var HeartbeatExpiry = &scenario.Definition{")
	mustContain(t, output, `Name:      "heartbeat-expiry"`)
	mustContain(t, output, "Modulus:   255")
	mustContain(t, output, "NsPerTick: 1000000")
	mustContain(t, output, `{Name: "beat", Mode: "expire", Interval: scenario.Interval{Milliseconds: 2}}`)
	mustContain(t, output, `{Name: "total", Mode: "elapsed"}`)
	mustContain(t, output, `AdvancePeriodic: []string{"beat"}`)
	mustContain(t, output, `Stop: []string{"total"}`)
	mustContain(t, output, `Restart: []string{"beat"}`)
	mustContain(t, output, "Expired: scenario.Bool(false)")
	mustContain(t, output, "Seconds: scenario.U32(0), Nanoseconds: scenario.U32(0)")
	mustContain(t, output, "DO NOT EDIT")
}

func TestGeneratedFixtureParses(t *testing.T) {
	output, err := Generate(heartbeatDef(), "fixtures")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "fixture_gen.go", output, 0); err != nil {
		t.Fatalf("generated code does not parse: %v\nOutput:\n%s", err, output)
	}
}

func TestVarName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"elapsed-basic", "ElapsedBasic"},
		{"expire_ordering", "ExpireOrdering"},
		{"periodic", "Periodic"},
		{"v2.wrap test", "V2WrapTest"},
	}
	for _, tt := range tests {
		if got := varName(tt.in); got != tt.want {
			t.Errorf("varName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixtureFileName(t *testing.T) {
	if got := fixtureFileName("elapsed-basic"); got != "elapsed_basic_gen.go" {
		t.Errorf("fixtureFileName = %q", got)
	}
}

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput:\n%s", substr, output)
	}
}
