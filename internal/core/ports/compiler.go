// Package ports declares the seams between the engine and its adapters.
package ports

import (
	"context"

	"github.com/lumenlang/lumen/internal/core/domain"
)

// Compiler defines the interface for translating a source module into an
// ES module.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile translates source text into JavaScript.
	//
	// originPath is the absolute path of the file the text was read from,
	// used for diagnostics and source map generation. Implementations must
	// be safe for concurrent use; the loader serializes per source file
	// but distinct files may compile in parallel.
	Compile(ctx context.Context, source, originPath string) (domain.CompileResult, error)
}
