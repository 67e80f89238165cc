// Command stimer-scengen generates Go test fixtures from scenario YAML files.
//
// Each input scenario becomes a Go source file declaring the scenario as a
// package-level variable, so tests can replay it without parsing YAML at
// run time.
//
// Usage:
//
//	stimer-scengen -output <dir> [-package <name>] <scenario.yaml>...
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/stimer-project/stimer-go/pkg/scenario"
)

func main() {
	outputDir := flag.String("output", "", "Output directory for generated Go files")
	pkg := flag.String("package", "fixtures", "Package name for generated files")
	flag.Parse()

	if *outputDir == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: stimer-scengen -output <dir> [-package <name>] <scenario.yaml>...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*outputDir, *pkg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(outputDir, pkg string, inputs []string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	for _, input := range inputs {
		def, err := scenario.Load(input)
		if err != nil {
			return fmt.Errorf("loading scenario %s: %w", input, err)
		}

		code, err := Generate(def, pkg)
		if err != nil {
			return err
		}

		outPath := filepath.Join(outputDir, fixtureFileName(def.Name))
		if err := writeFormatted(outPath, code); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("  generated %s\n", outPath)
	}
	return nil
}

// writeFormatted runs the generated code through goimports before writing.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}

// fixtureFileName converts "elapsed-basic" to "elapsed_basic_gen.go".
func fixtureFileName(name string) string {
	s := strings.ToLower(name)
	s = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
	return s + "_gen.go"
}
