package include

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Expander splices rendered declaration markdown into host documents in
// place of inclusion directives.
type Expander struct {
	typeRoot string
	renderer Renderer
}

// NewExpander creates an expander resolving directive paths against typeRoot.
func NewExpander(typeRoot string, renderer Renderer) *Expander {
	return &Expander{typeRoot: typeRoot, renderer: renderer}
}

// TypeRoot returns the directory directive paths are resolved against.
func (e *Expander) TypeRoot() string {
	return e.typeRoot
}

// ExpandFile reads and expands the document at docPath.
func (e *Expander) ExpandFile(ctx context.Context, docPath string) (string, []string, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open %s: %w", docPath, err)
	}
	defer f.Close()

	text, includes, err := e.Expand(ctx, f)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand %s: %w", docPath, err)
	}
	return text, includes, nil
}

// Expand replaces every directive line read from r with the rendered
// markdown of the declaration file it names, trailing newlines trimmed.
// All other lines pass through unchanged. The returned slice lists the
// resolved declaration files in directive order.
func (e *Expander) Expand(ctx context.Context, r io.Reader) (string, []string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read document: %w", err)
	}

	lines := strings.Split(string(src), "\n")
	includes := []string{}

	var out bytes.Buffer
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		if i > 0 {
			out.WriteByte('\n')
		}

		relPath, ok := ParseDirective(line)
		if !ok {
			out.WriteString(line)
			continue
		}

		declPath := ResolveDirectivePath(e.typeRoot, relPath)
		rendered, err := e.renderer.Render(ctx, declPath)
		if err != nil {
			return "", nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		out.WriteString(strings.TrimRight(rendered, "\n"))
		includes = append(includes, declPath)
	}

	return out.String(), includes, nil
}
