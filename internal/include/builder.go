package include

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// invalidator is implemented by renderers that memoize output per file.
type invalidator interface {
	Invalidate(declPath string)
}

// Builder expands every discovered document into the output directory,
// preserving paths relative to the project root.
type Builder struct {
	rootDir   string
	outDir    string
	discovery *DocumentDiscovery
	expander  *Expander
	deps      *DependencyGraph
	progress  ProgressReporter
	verbose   bool

	mu sync.Mutex
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) BuilderOption {
	return func(b *Builder) {
		b.progress = progress
	}
}

// WithVerbose logs every written document.
func WithVerbose(verbose bool) BuilderOption {
	return func(b *Builder) {
		b.verbose = verbose
	}
}

// NewBuilder creates a document builder.
func NewBuilder(rootDir, outDir string, discovery *DocumentDiscovery, expander *Expander, opts ...BuilderOption) *Builder {
	b := &Builder{
		rootDir:   rootDir,
		outDir:    outDir,
		discovery: discovery,
		expander:  expander,
		deps:      NewDependencyGraph(),
		progress:  &NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dependencies returns the document to declaration graph built so far.
func (b *Builder) Dependencies() *DependencyGraph {
	return b.deps
}

// BuildAll discovers and builds every document.
func (b *Builder) BuildAll(ctx context.Context) (*BuildStats, error) {
	docs, err := b.discovery.Discover()
	if err != nil {
		return nil, err
	}
	return b.BuildDocuments(ctx, docs)
}

// BuildDocuments builds the given documents. A failing document does not
// stop the others; all failures are returned together.
func (b *Builder) BuildDocuments(ctx context.Context, docs []string) (*BuildStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	startTime := time.Now()
	stats := &BuildStats{}
	b.progress.OnBuildStart(len(docs))

	var errs []error
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		directives, err := b.buildDocument(ctx, doc)
		if err != nil {
			stats.Failed++
			errs = append(errs, err)
			b.progress.OnDocumentFailed(doc, err)
			continue
		}

		stats.Documents++
		stats.Directives += directives
		b.progress.OnDocumentBuilt(doc)
	}

	stats.Duration = time.Since(startTime)
	b.progress.OnComplete(stats)

	return stats, errors.Join(errs...)
}

func (b *Builder) buildDocument(ctx context.Context, doc string) (int, error) {
	outPath, err := b.OutputPath(doc)
	if err != nil {
		return 0, err
	}

	text, includes, err := b.expander.ExpandFile(ctx, doc)
	if err != nil {
		return 0, err
	}

	if err := b.deps.SetIncludes(doc, includes); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory for %s: %w", outPath, err)
	}
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if b.verbose {
		log.Printf("Built %s (%d directives)", outPath, len(includes))
	}
	return len(includes), nil
}

// OutputPath maps a document under the project root to its output file.
func (b *Builder) OutputPath(doc string) (string, error) {
	rel, err := filepath.Rel(b.rootDir, doc)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", doc, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("document %s is outside %s", doc, b.rootDir)
	}
	return filepath.Join(b.outDir, rel), nil
}

// HandleChanges rebuilds the documents affected by changed paths. A changed
// declaration file rebuilds every document that includes it; a changed
// document rebuilds itself, and a deleted document loses its output.
func (b *Builder) HandleChanges(ctx context.Context, paths []string) (*BuildStats, error) {
	rebuild := make(map[string]struct{})
	var errs []error

	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ts", ".tsx":
			if inv, ok := b.expander.renderer.(invalidator); ok {
				inv.Invalidate(path)
			}
			for _, doc := range b.deps.Dependents(path) {
				rebuild[doc] = struct{}{}
			}
		default:
			rel, ok := b.discovery.Contains(path)
			if !ok || !b.discovery.Matches(rel) {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				if err := b.removeDocument(path); err != nil {
					errs = append(errs, err)
				}
				continue
			}
			rebuild[cacheKey(path)] = struct{}{}
		}
	}

	if len(rebuild) == 0 {
		return &BuildStats{}, errors.Join(errs...)
	}

	docs := make([]string, 0, len(rebuild))
	for doc := range rebuild {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	stats, err := b.BuildDocuments(ctx, docs)
	if err != nil {
		errs = append(errs, err)
	}
	return stats, errors.Join(errs...)
}

func (b *Builder) removeDocument(doc string) error {
	if err := b.deps.RemoveDocument(doc); err != nil {
		return err
	}

	outPath, err := b.OutputPath(doc)
	if err != nil {
		return err
	}
	if err := os.Remove(outPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", outPath, err)
	}

	if b.verbose {
		log.Printf("Removed %s", outPath)
	}
	return nil
}
