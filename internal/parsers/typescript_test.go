package parsers

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/typejuice/internal/extraction"
)

// Test Plan for TypeScript Parser:
// - ParseFile extracts interfaces, classes and functions from a declaration file
// - Entries follow source order with namespace members flattened in place
// - Extracting the same file twice yields identical metadata
// - Missing files propagate the read error (fs.ErrNotExist)
// - Empty files yield no entries
// - TSX files parse with the TSX grammar

func parseEntries(t *testing.T, src string) []extraction.StructureEntry {
	t.Helper()

	entries, err := NewTypeScriptParser().Parse(context.Background(), "test.ts", []byte(src))
	require.NoError(t, err)
	return entries
}

func entryNames(entries []extraction.StructureEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, string(e.Kind)+":"+e.Meta.DeclName())
	}
	return names
}

func TestTypeScriptParser_ParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join("..", "..", "testdata", "typescript", "widgets.d.ts")
	entries, err := NewTypeScriptParser().ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Interface:WidgetOptions",
		"Interface:Palette",
		"Class:Widget",
		"Function:mount",
		"Function:unmount",
	}, entryNames(entries))

	options := entries[0].Meta.(*extraction.InterfaceMeta)
	require.Len(t, options.Props, 4)
	assert.Equal(t, extraction.FieldMeta{
		Name:     "width",
		Optional: true,
		Types:    [][]string{{"number"}},
		Comments: []string{"Preferred width in pixels. Falls back to the container width when omitted."},
	}, options.Props[1])
	assert.Equal(t, []string{"Accessible label.", "Screen readers announce this text."}, options.Props[2].Comments)
	assert.Equal(t, [][]string{{"Theme.Palette"}}, options.Props[3].Types)

	widget := entries[2].Meta.(*extraction.ClassMeta)
	require.NotNil(t, widget.Constructor)
	assert.Equal(t, []string{"Creates a widget bound to a host element."}, widget.Constructor.Comments)
	require.Len(t, widget.Constructor.Params, 2)
	assert.Equal(t, "host", widget.Constructor.Params[0].Name)
	assert.Equal(t, []string{"Host element id."}, widget.Constructor.Params[0].Comments)
	assert.True(t, widget.Constructor.Params[1].Optional)

	mount := entries[3].Meta.(*extraction.FunctionMeta)
	assert.Equal(t, [][]string{{"boolean"}}, mount.ReturnTypes)
	require.Len(t, mount.Params, 2)
	assert.Equal(t, [][]string{{"string"}, {"number"}}, mount.Params[1].Types)
}

func TestTypeScriptParser_Deterministic(t *testing.T) {
	t.Parallel()

	path := filepath.Join("..", "..", "testdata", "typescript", "widgets.d.ts")
	parser := NewTypeScriptParser()

	first, err := parser.ParseFile(context.Background(), path)
	require.NoError(t, err)
	second, err := parser.ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTypeScriptParser_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.d.ts")
	entries, err := NewTypeScriptParser().ParseFile(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Nil(t, entries)
}

func TestTypeScriptParser_EmptySource(t *testing.T) {
	t.Parallel()

	entries := parseEntries(t, "")
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestTypeScriptParser_TSX(t *testing.T) {
	t.Parallel()

	src := `export interface ButtonProps {
  // Click handler label.
  label: string;
}

export function Button(props: ButtonProps): JSX.Element {
  return <button>{props.label}</button>;
}
`
	entries, err := NewTypeScriptParser().Parse(context.Background(), "button.tsx", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Interface:ButtonProps", "Function:Button"}, entryNames(entries))
	fn := entries[1].Meta.(*extraction.FunctionMeta)
	assert.Equal(t, [][]string{{"JSX.Element"}}, fn.ReturnTypes)
}
