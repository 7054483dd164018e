package parsers

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/typejuice/internal/extraction"
)

// TypeScriptParser extracts documentation structure from TypeScript
// declaration files.
type TypeScriptParser struct{}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *TypeScriptParser {
	return &TypeScriptParser{}
}

// ParseFile reads filePath and extracts its declarations. A read failure is
// returned wrapped, so errors.Is(err, fs.ErrNotExist) works for missing files.
func (p *TypeScriptParser) ParseFile(ctx context.Context, filePath string) ([]extraction.StructureEntry, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return p.Parse(ctx, filePath, source)
}

// Parse extracts declarations from source. filePath only selects the grammar
// and labels errors; nothing is read from disk.
func (p *TypeScriptParser) Parse(ctx context.Context, filePath string, source []byte) ([]extraction.StructureEntry, error) {
	tree, err := parseSource(ctx, filePath, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return walkStructure(tree.RootNode(), source)
}
