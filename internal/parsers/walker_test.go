package parsers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Structure Walker:
// - Entries follow top-to-bottom source order
// - export and declare wrappers are unwrapped
// - Namespace members are spliced in at the namespace position
// - Namespace names are discarded (no entry records them)
// - declare global and declare module bodies are flattened too
// - Unrecognized statements are ignored
// - Walking a non-container node fails with ErrNotContainer

func TestWalkStructure_SourceOrder(t *testing.T) {
	t.Parallel()

	entries := parseEntries(t, `function first(): void {}
interface Second {}
const ignored = 1;
type AlsoIgnored = string;
export class Third {}
export interface Fourth {}
declare function fifth(): void;
abstract class Sixth {}
`)

	assert.Equal(t, []string{
		"Function:first",
		"Interface:Second",
		"Class:Third",
		"Interface:Fourth",
		"Function:fifth",
		"Class:Sixth",
	}, entryNames(entries))
}

func TestWalkStructure_NamespacesFlattened(t *testing.T) {
	t.Parallel()

	entries := parseEntries(t, `interface Before {}
namespace Outer {
  export interface Inner {
    x: string;
  }
  namespace Deeper {
    export function deep(): void;
  }
}
declare namespace Ambient {
  class Shape {}
}
class After {}
`)

	assert.Equal(t, []string{
		"Interface:Before",
		"Interface:Inner",
		"Function:deep",
		"Class:Shape",
		"Class:After",
	}, entryNames(entries))

	// Container names are dropped when members are flattened.
	for _, name := range entryNames(entries) {
		assert.NotContains(t, name, "Outer")
		assert.NotContains(t, name, "Deeper")
		assert.NotContains(t, name, "Ambient")
	}
}

func TestWalkStructure_AmbientModules(t *testing.T) {
	t.Parallel()

	entries := parseEntries(t, `declare module "widgets" {
  export interface Config {}
}
declare global {
  interface Window {
    app: string;
  }
}
`)

	assert.Equal(t, []string{"Interface:Config", "Interface:Window"}, entryNames(entries))
}

func TestWalkStructure_RejectsNonContainer(t *testing.T) {
	t.Parallel()

	src := []byte("interface Lonely {}\n")
	tree, err := parseSource(context.Background(), "lonely.ts", src)
	require.NoError(t, err)
	defer tree.Close()

	declaration := tree.RootNode().NamedChild(0)
	require.NotNil(t, declaration)
	require.Equal(t, "interface_declaration", declaration.Kind())

	entries, err := walkStructure(declaration, src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotContainer))
	assert.Contains(t, err.Error(), "interface_declaration")
	assert.Nil(t, entries)

	_, err = walkStructure(nil, src)
	assert.True(t, errors.Is(err, ErrNotContainer))
}
