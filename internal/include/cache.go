package include

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/typejuice/internal/markdown"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

// Renderer turns a declaration file into markdown.
type Renderer interface {
	Render(ctx context.Context, declPath string) (string, error)
}

// cachedRender is a rendered declaration stamped with the file state it was
// rendered from.
type cachedRender struct {
	size    int64
	modTime time.Time
	text    string
}

// RenderCache renders declaration files and memoizes the output per path.
// An entry is reused only while the file's size and modification time match.
type RenderCache struct {
	parser parsers.Parser
	cache  otter.Cache[string, cachedRender]
}

// NewRenderCache creates a cache holding up to capacity rendered files.
func NewRenderCache(capacity int, parser parsers.Parser) (*RenderCache, error) {
	builder, err := otter.NewBuilder[string, cachedRender](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	cache, err := builder.
		Cost(func(key string, value cachedRender) uint32 { return 1 }).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build render cache: %w", err)
	}

	return &RenderCache{parser: parser, cache: cache}, nil
}

// Render returns the markdown for declPath, rendering it when the cached
// entry is missing or stale.
func (c *RenderCache) Render(ctx context.Context, declPath string) (string, error) {
	key := cacheKey(declPath)

	info, err := os.Stat(declPath)
	if err != nil {
		c.cache.Delete(key)
		return "", fmt.Errorf("failed to stat %s: %w", declPath, err)
	}

	if entry, ok := c.cache.Get(key); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		return entry.text, nil
	}

	text, err := markdown.RenderFile(ctx, c.parser, declPath)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, cachedRender{size: info.Size(), modTime: info.ModTime(), text: text})
	return text, nil
}

// Invalidate drops the cached output for declPath.
func (c *RenderCache) Invalidate(declPath string) {
	c.cache.Delete(cacheKey(declPath))
}

// Len returns the number of cached files.
func (c *RenderCache) Len() int {
	return c.cache.Size()
}

// Close releases the cache.
func (c *RenderCache) Close() {
	c.cache.Close()
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
