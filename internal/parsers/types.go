package parsers

import (
	"context"

	"github.com/mvp-joe/typejuice/internal/extraction"
)

// Parser extracts the ordered declaration structure of a source file.
type Parser interface {
	// ParseFile reads and extracts a declaration file.
	ParseFile(ctx context.Context, filePath string) ([]extraction.StructureEntry, error)

	// Parse extracts declarations from source already in memory.
	Parse(ctx context.Context, filePath string, source []byte) ([]extraction.StructureEntry, error)
}

var _ Parser = (*TypeScriptParser)(nil)
