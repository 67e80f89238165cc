//go:build tools

package tools

// Tool dependencies tracked with blank imports so go.mod pins their
// versions. Run: go run github.com/vektra/mockery/v2 (from the repo
// root) to regenerate mocks.
import (
	_ "github.com/vektra/mockery/v2"
)
