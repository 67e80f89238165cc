package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/stimer-project/stimer-go/pkg/scenario"
)

// funcMap provides helper functions available to the fixture template.
var funcMap = template.FuncMap{
	"quote":    func(s string) string { return fmt.Sprintf("%q", s) },
	"interval": intervalLiteral,
	"names":    nameListLiteral,
	"expect":   expectationLiteral,
}

var fixtureTmpl = template.Must(template.New("fixture").Funcs(funcMap).Parse(`// Code generated by stimer-scengen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/stimer-project/stimer-go/pkg/scenario"
)

// {{.VarName}} is the {{quote .Def.Name}} scenario.
var {{.VarName}} = &scenario.Definition{
	Name:      {{quote .Def.Name}},
	Modulus:   {{.Def.Modulus}},
	NsPerTick: {{.Def.NsPerTick}},
	Timers: []scenario.TimerDef{
{{- range .Def.Timers}}
		{Name: {{quote .Name}}, Mode: {{quote .Mode}}{{interval .Interval}}},
{{- end}}
	},
	Steps: []scenario.Step{
{{- range .Def.Steps}}
		{Ticks: {{.Ticks}}{{if .Sweep}}, Sweep: true{{end}}{{names "Stop" .Stop}}{{names "AdvancePeriodic" .AdvancePeriodic}}{{names "Restart" .Restart}}{{if .Expect}}, Expect: []scenario.Expectation{
{{- range .Expect}}
			{{expect .}},
{{- end}}
		}{{end}}},
{{- end}}
	},
}
`))

// fixtureData holds everything the fixture template needs.
type fixtureData struct {
	Package string
	VarName string
	Def     *scenario.Definition
}

// Generate renders a Go source file declaring the scenario as a fixture
// variable named after the scenario.
func Generate(def *scenario.Definition, pkg string) (string, error) {
	data := fixtureData{
		Package: pkg,
		VarName: varName(def.Name),
		Def:     def,
	}

	var b strings.Builder
	if err := fixtureTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering fixture for %q: %w", def.Name, err)
	}
	return b.String(), nil
}

// varName converts a scenario name like "elapsed-basic" to "ElapsedBasic".
func varName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// intervalLiteral renders the optional Interval field of a TimerDef.
func intervalLiteral(i scenario.Interval) string {
	switch {
	case i.Seconds != 0:
		return fmt.Sprintf(", Interval: scenario.Interval{Seconds: %d}", i.Seconds)
	case i.Milliseconds != 0:
		return fmt.Sprintf(", Interval: scenario.Interval{Milliseconds: %d}", i.Milliseconds)
	case i.Microseconds != 0:
		return fmt.Sprintf(", Interval: scenario.Interval{Microseconds: %d}", i.Microseconds)
	case i.Nanoseconds != 0:
		return fmt.Sprintf(", Interval: scenario.Interval{Nanoseconds: %d}", i.Nanoseconds)
	default:
		return ""
	}
}

// nameListLiteral renders an optional []string field of a Step.
func nameListLiteral(field string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return fmt.Sprintf(", %s: []string{%s}", field, strings.Join(quoted, ", "))
}

// expectationLiteral renders one Expectation literal.
func expectationLiteral(e scenario.Expectation) string {
	parts := []string{fmt.Sprintf("Timer: %q", e.Timer)}
	if e.Seconds != nil {
		parts = append(parts, fmt.Sprintf("Seconds: scenario.U32(%d)", *e.Seconds))
	}
	if e.Nanoseconds != nil {
		parts = append(parts, fmt.Sprintf("Nanoseconds: scenario.U32(%d)", *e.Nanoseconds))
	}
	if e.Expired != nil {
		parts = append(parts, fmt.Sprintf("Expired: scenario.Bool(%v)", *e.Expired))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
