package include

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/typejuice/internal/extraction"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

const exampleDecl = `interface Example {
  // Unique identifier.
  id: string;
  // Occurrence count.
  count?: number;
}
`

const exampleMarkdown = "## Interface: Example\n" +
	"\n" +
	"### Properties\n" +
	"\n" +
	"- **`id`**: **string**\n" +
	"  Unique identifier.\n" +
	"- **`count`**: **number** (optional)\n" +
	"  Occurrence count."

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// countingParser wraps the TypeScript parser and counts file reads.
type countingParser struct {
	parsers.Parser

	mu    sync.Mutex
	calls map[string]int
}

func newCountingParser() *countingParser {
	return &countingParser{
		Parser: parsers.NewTypeScriptParser(),
		calls:  make(map[string]int),
	}
}

func (p *countingParser) ParseFile(ctx context.Context, filePath string) ([]extraction.StructureEntry, error) {
	p.mu.Lock()
	p.calls[filePath]++
	p.mu.Unlock()
	return p.Parser.ParseFile(ctx, filePath)
}

func (p *countingParser) count(filePath string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[filePath]
}

// stubRenderer returns canned output per declaration path.
type stubRenderer struct {
	outputs map[string]string
	err     error
}

func (s *stubRenderer) Render(ctx context.Context, declPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	out, ok := s.outputs[declPath]
	if !ok {
		return "", os.ErrNotExist
	}
	return out, nil
}

func newTestCache(t *testing.T) (*RenderCache, *countingParser) {
	t.Helper()

	parser := newCountingParser()
	cache, err := NewRenderCache(16, parser)
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return cache, parser
}
