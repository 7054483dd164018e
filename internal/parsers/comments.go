package parsers

import (
	"regexp"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// CommentWrapWidth is the column at which comment paragraphs are wrapped.
const CommentWrapWidth = 80

var commentLinePattern = regexp.MustCompile(`^\s*//(.*)$`)

type lineClass int

const (
	lineCode lineClass = iota
	lineBlank
	lineComment
)

// classifyLine sorts a physical line into comment, blank or code. An empty
// "//" line counts as blank so it separates paragraphs.
func classifyLine(line string) (lineClass, string) {
	if strings.TrimSpace(line) == "" {
		return lineBlank, ""
	}
	m := commentLinePattern.FindStringSubmatch(line)
	if m == nil {
		return lineCode, ""
	}
	text := strings.TrimSpace(m[1])
	if text == "" {
		return lineBlank, ""
	}
	return lineComment, text
}

// commentScanner collects the line-comment block that leads a declaration.
//
// State:
//   - lineBreak:   a blank line was seen since the last comment line
//   - commentSeen: at least one comment line was collected
//   - paragraphs:  collected paragraphs, earliest first
//
// A comment line continues the last paragraph unless a blank line came
// between them. A code line ends the scan once a comment has been seen and
// no blank line separates it from that comment.
type commentScanner struct {
	lineBreak   bool
	commentSeen bool
	stopped     bool
	paragraphs  []string
}

// feed consumes one line and reports whether scanning should continue.
func (s *commentScanner) feed(line string) bool {
	if s.stopped {
		return false
	}

	class, text := classifyLine(line)
	switch class {
	case lineComment:
		if !s.lineBreak && len(s.paragraphs) > 0 {
			last := len(s.paragraphs) - 1
			s.paragraphs[last] = s.paragraphs[last] + " " + text
		} else {
			s.paragraphs = append(s.paragraphs, text)
		}
		s.lineBreak = false
		s.commentSeen = true
	case lineBlank:
		s.lineBreak = true
	case lineCode:
		if !s.lineBreak && s.commentSeen {
			s.stopped = true
			return false
		}
	}
	return true
}

// result returns the collected paragraphs, each wrapped at CommentWrapWidth.
func (s *commentScanner) result() []string {
	wrapped := make([]string, 0, len(s.paragraphs))
	for _, p := range s.paragraphs {
		wrapped = append(wrapped, wordwrap.WrapString(p, CommentWrapWidth))
	}
	return wrapped
}

// associateComments scans source[start:end) for the comment block leading
// the declaration that ends at end.
func associateComments(source []byte, start, end uint) []string {
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	if start > end {
		return []string{}
	}

	scanner := &commentScanner{}
	text := strings.ReplaceAll(string(source[start:end]), "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if !scanner.feed(line) {
			break
		}
	}
	return scanner.result()
}

// nodeComments returns the leading comment paragraphs of node.
func nodeComments(node *sitter.Node, source []byte) []string {
	start, end := fullSpan(node)
	return associateComments(source, start, end)
}
