package parsers

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/typejuice/internal/extraction"
)

// ErrNotContainer indicates the walker was handed a node that is neither a
// source file nor a namespace body. It signals a caller bug, not bad input.
var ErrNotContainer = errors.New("node is not a statement container")

// walkStructure produces the ordered entries for a program or statement_block.
// Namespace members are spliced in at the namespace's position; the
// namespace's own name is not recorded.
func walkStructure(container *sitter.Node, source []byte) ([]extraction.StructureEntry, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotContainer)
	}
	switch container.Kind() {
	case "program", "statement_block":
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, container.Kind())
	}

	entries := []extraction.StructureEntry{}
	for _, statement := range namedChildren(container) {
		statementEntries, err := walkStatement(statement, source)
		if err != nil {
			return nil, err
		}
		entries = append(entries, statementEntries...)
	}
	return entries, nil
}

// walkStatement dispatches a single statement by kind.
func walkStatement(statement *sitter.Node, source []byte) ([]extraction.StructureEntry, error) {
	node := unwrapStatement(statement)
	if node == nil {
		return nil, nil
	}

	switch node.Kind() {
	case "interface_declaration":
		return []extraction.StructureEntry{{Kind: extraction.KindInterface, Meta: extractInterface(node, source)}}, nil
	case "class_declaration", "abstract_class_declaration":
		return []extraction.StructureEntry{{Kind: extraction.KindClass, Meta: extractClass(node, source)}}, nil
	case "function_declaration", "function_signature":
		return []extraction.StructureEntry{{Kind: extraction.KindFunction, Meta: extractFunction(node, source)}}, nil
	case "internal_module", "module":
		body := node.ChildByFieldName("body")
		if body == nil {
			// declare module "x"; has no body
			return nil, nil
		}
		return walkStructure(body, source)
	case "statement_block":
		// declare global { ... }
		return walkStructure(node, source)
	}
	return nil, nil
}

// unwrapStatement strips export and declare wrappers and namespace
// expression statements down to the declaration they carry.
func unwrapStatement(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Kind() {
		case "export_statement":
			node = node.ChildByFieldName("declaration")
		case "ambient_declaration":
			node = firstDeclarationChild(node)
		case "expression_statement":
			inner := node.NamedChild(0)
			if inner == nil || inner.Kind() != "internal_module" {
				return nil
			}
			node = inner
		default:
			return node
		}
	}
	return nil
}

// firstDeclarationChild returns the first named non-comment child of an
// ambient declaration.
func firstDeclarationChild(node *sitter.Node) *sitter.Node {
	for _, child := range namedChildren(node) {
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}
