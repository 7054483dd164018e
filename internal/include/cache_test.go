package include

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Render Cache:
// - First render parses the file and returns the rendered markdown
// - A second render of an unchanged file is served from the cache
// - A file whose size or modification time changed is rendered again
// - Invalidate forces the next render to parse again
// - Missing files return fs.ErrNotExist and drop any cached entry
// - Construction fails for a non-positive capacity

func TestRenderCache_RendersAndCaches(t *testing.T) {
	t.Parallel()

	cache, parser := newTestCache(t)
	decl := filepath.Join(t.TempDir(), "example.ts")
	writeFile(t, decl, exampleDecl)

	first, err := cache.Render(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, exampleMarkdown+"\n", first)

	second, err := cache.Render(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, parser.count(decl))
	assert.Eventually(t, func() bool { return cache.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRenderCache_StaleEntryRerendered(t *testing.T) {
	t.Parallel()

	cache, parser := newTestCache(t)
	decl := filepath.Join(t.TempDir(), "shape.ts")
	writeFile(t, decl, "interface Shape {}\n")

	first, err := cache.Render(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, "## Interface: Shape\n", first)

	writeFile(t, decl, "interface Shape {}\nfunction area(): number;\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(decl, later, later))

	second, err := cache.Render(context.Background(), decl)
	require.NoError(t, err)
	assert.Contains(t, second, "## Function: area")
	assert.Equal(t, 2, parser.count(decl))
}

func TestRenderCache_Invalidate(t *testing.T) {
	t.Parallel()

	cache, parser := newTestCache(t)
	decl := filepath.Join(t.TempDir(), "example.ts")
	writeFile(t, decl, exampleDecl)

	_, err := cache.Render(context.Background(), decl)
	require.NoError(t, err)

	cache.Invalidate(decl)

	_, err = cache.Render(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, 2, parser.count(decl))
}

func TestRenderCache_MissingFile(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t)
	decl := filepath.Join(t.TempDir(), "gone.ts")
	writeFile(t, decl, exampleDecl)

	_, err := cache.Render(context.Background(), decl)
	require.NoError(t, err)

	require.NoError(t, os.Remove(decl))

	_, err = cache.Render(context.Background(), decl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Eventually(t, func() bool { return cache.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNewRenderCache_InvalidCapacity(t *testing.T) {
	t.Parallel()

	_, err := NewRenderCache(0, newCountingParser())
	require.Error(t, err)
}
