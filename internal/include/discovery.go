package include

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// DocumentDiscovery finds host documents under a root directory using glob
// patterns and ignore rules.
type DocumentDiscovery struct {
	rootDir        string
	docPatterns    []compiledPattern
	ignorePatterns []compiledPattern
	skipDirs       []string
}

// NewDocumentDiscovery compiles the document and ignore patterns. Patterns
// are matched against slash-separated paths relative to rootDir. Any skipDirs
// (such as the build output directory) are never descended into.
func NewDocumentDiscovery(rootDir string, docPatterns, ignorePatterns []string, skipDirs ...string) (*DocumentDiscovery, error) {
	dd := &DocumentDiscovery{rootDir: rootDir}

	var err error
	if dd.docPatterns, err = compilePatterns(docPatterns); err != nil {
		return nil, err
	}
	if dd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	for _, dir := range skipDirs {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		dd.skipDirs = append(dd.skipDirs, filepath.Clean(dir))
	}

	return dd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// Discover walks the root directory and returns matching documents, sorted.
func (dd *DocumentDiscovery) Discover() ([]string, error) {
	docs := []string{}

	err := filepath.WalkDir(dd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(dd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && (dd.shouldIgnore(relPath) || dd.isSkipped(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if dd.Matches(relPath) {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents in %s: %w", dd.rootDir, err)
	}

	sort.Strings(docs)
	return docs, nil
}

// Matches reports whether a slash-separated path relative to the root is a
// document that should be built.
func (dd *DocumentDiscovery) Matches(relPath string) bool {
	if dd.shouldIgnore(relPath) {
		return false
	}
	return matchesAnyPattern(relPath, dd.docPatterns)
}

// Contains reports whether path lies inside the discovery root and outside
// every skipped directory.
func (dd *DocumentDiscovery) Contains(path string) (string, bool) {
	rel, err := filepath.Rel(dd.rootDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if abs, err := filepath.Abs(path); err == nil && dd.isSkipped(abs) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (dd *DocumentDiscovery) isSkipped(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, dir := range dd.skipDirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// shouldIgnore checks if a path matches any ignore pattern.
func (dd *DocumentDiscovery) shouldIgnore(relPath string) bool {
	// Always ignore the project config directory
	if strings.HasPrefix(relPath, ".typejuice/") || relPath == ".typejuice" {
		return true
	}

	if matchesAnyPattern(relPath, dd.ignorePatterns) {
		return true
	}

	// "node_modules" should match pattern "node_modules/**"
	return matchesAnyPattern(relPath+"/**", dd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Paths in the root also match patterns with the **/ prefix removed, so
	// "**/*.md" matches both "README.md" and "docs/guide.md".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			simplified := strings.TrimPrefix(cp.pattern, "**/")
			if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
				return true
			}
		}
	}

	return false
}
