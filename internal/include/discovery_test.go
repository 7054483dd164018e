package include

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Document Discovery:
// - "**/*.md" matches documents at the root and in subdirectories
// - Ignore patterns exclude files and whole directories
// - The .typejuice directory and skipped directories are never searched
// - Results are sorted absolute paths
// - Invalid glob patterns are rejected
// - Contains maps paths to root-relative form and rejects outside paths

func TestDocumentDiscovery_Discover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{
		"README.md",
		"docs/guide.md",
		"docs/deep/api.md",
		"docs/notes.txt",
		"node_modules/pkg/README.md",
		"drafts/wip.md",
		".typejuice/notes.md",
		"dist/docs/README.md",
	} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), "x")
	}

	dd, err := NewDocumentDiscovery(root, []string{"**/*.md"}, []string{"node_modules/**", "drafts/**"}, filepath.Join(root, "dist", "docs"))
	require.NoError(t, err)

	docs, err := dd.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "deep", "api.md"),
		filepath.Join(root, "docs", "guide.md"),
	}, docs)
}

func TestDocumentDiscovery_NarrowPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "x")
	writeFile(t, filepath.Join(root, "guide", "intro.md"), "x")
	writeFile(t, filepath.Join(root, "guide", "sub", "more.md"), "x")

	dd, err := NewDocumentDiscovery(root, []string{"guide/*.md"}, nil)
	require.NoError(t, err)

	docs, err := dd.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "guide", "intro.md")}, docs)
}

func TestDocumentDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewDocumentDiscovery(t.TempDir(), []string{"[unclosed"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unclosed")
}

func TestDocumentDiscovery_Contains(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	out := filepath.Join(root, "dist")
	dd, err := NewDocumentDiscovery(root, []string{"**/*.md"}, nil, out)
	require.NoError(t, err)

	rel, ok := dd.Contains(filepath.Join(root, "docs", "a.md"))
	assert.True(t, ok)
	assert.Equal(t, "docs/a.md", rel)

	_, ok = dd.Contains(filepath.Join(filepath.Dir(root), "elsewhere.md"))
	assert.False(t, ok)

	_, ok = dd.Contains(filepath.Join(out, "a.md"))
	assert.False(t, ok)

	assert.True(t, dd.Matches("docs/a.md"))
	assert.False(t, dd.Matches(".typejuice/config.md"))
}
