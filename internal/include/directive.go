package include

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DirectivePrefix starts an inclusion directive line.
const DirectivePrefix = "<<< typejuice:"

var directivePattern = regexp.MustCompile(`^<<< typejuice:(.+?)\s*$`)

// ParseDirective reports whether line is an inclusion directive and returns
// the declaration path it names, relative to the type root.
func ParseDirective(line string) (string, bool) {
	m := directivePattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return "", false
	}
	path := strings.TrimSpace(m[1])
	if path == "" {
		return "", false
	}
	return path, true
}

// ResolveDirectivePath joins a directive path onto the type root.
// Directive paths always use forward slashes.
func ResolveDirectivePath(typeRoot, relPath string) string {
	return filepath.Join(typeRoot, filepath.FromSlash(relPath))
}
