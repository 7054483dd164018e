package parsers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ErrParseFailed indicates tree-sitter returned no tree for the source.
var ErrParseFailed = errors.New("failed to parse source")

// languageFor picks the grammar for a declaration file. TSX sources need the
// TSX grammar; everything else (.ts, .d.ts, .mts, .cts) uses TypeScript.
func languageFor(filePath string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(filePath), ".tsx") {
		return sitter.NewLanguage(typescript.LanguageTSX())
	}
	return sitter.NewLanguage(typescript.LanguageTypescript())
}

// parseSource parses source with the grammar matching filePath.
// The caller owns the returned tree and must Close it.
func parseSource(ctx context.Context, filePath string, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(languageFor(filePath)); err != nil {
		return nil, fmt.Errorf("failed to set language for %s: %w", filePath, err)
	}

	tree := parser.ParseCtx(ctx, source, nil)
	if tree == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, filePath)
	}
	return tree, nil
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// namedChildren returns the named children of node, in order.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := node.NamedChildCount()
	results := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		results = append(results, node.NamedChild(i))
	}
	return results
}

// findChildByKind finds the first named child with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	for _, child := range namedChildren(node) {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// hasToken reports whether node has a direct anonymous child token with the
// given text, e.g. the "?" optional marker.
func hasToken(node *sitter.Node, token string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

// fullSpan returns the byte span of node including its leading trivia: it
// starts where the previous non-comment sibling ends (or where the parent
// starts) and ends where node ends.
func fullSpan(node *sitter.Node) (start, end uint) {
	end = node.EndByte()
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Kind() != "comment" {
			return prev.EndByte(), end
		}
	}
	if parent := node.Parent(); parent != nil {
		return parent.StartByte(), end
	}
	return 0, end
}
