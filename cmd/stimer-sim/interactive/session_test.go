package interactive

import (
	"testing"

	"github.com/stimer-project/stimer-go/pkg/duration"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input string
		want  duration.Duration
	}{
		{"2ms", duration.Duration{Nanoseconds: 2_000_000}},
		{"1s", duration.Duration{Seconds: 1}},
		{"1.5s", duration.Duration{Seconds: 1, Nanoseconds: 500_000_000}},
		{"1s1ms", duration.Duration{Seconds: 1, Nanoseconds: 1_000_000}},
		{"3000us", duration.Duration{Nanoseconds: 3_000_000}},
		{"90m", duration.Duration{Seconds: 5400}},
	}

	for _, tt := range tests {
		got, err := parseInterval(tt.input)
		if err != nil {
			t.Errorf("parseInterval(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseInterval(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseIntervalRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "-2ms", "0s"} {
		if _, err := parseInterval(input); err == nil {
			t.Errorf("parseInterval(%q) accepted invalid input", input)
		}
	}
}
