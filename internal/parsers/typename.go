package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// keywordTypeNames maps keyword token kinds to their canonical names.
// Kinds missing from the table resolve to "".
var keywordTypeNames = map[string]string{
	"any":           "any",
	"bigint":        "bigint",
	"boolean":       "boolean",
	"false":         "false",
	"never":         "never",
	"null":          "null",
	"number":        "number",
	"object":        "object",
	"string":        "string",
	"symbol":        "symbol",
	"true":          "true",
	"undefined":     "undefined",
	"unique symbol": "unique symbol",
	"unknown":       "unknown",
	"void":          "void",
}

// Field names carrying the left and right halves of a qualified name.
// nested_type_identifier uses module/name, nested_identifier (and its
// member_expression alias) uses object/property.
var (
	qualifierLeftFields  = []string{"module", "object"}
	qualifierRightFields = []string{"name", "property"}
)

// resolveTypeName turns a type node into a flat, dotted name string.
func resolveTypeName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "type_annotation", "parenthesized_type":
		if inner := node.NamedChild(0); inner != nil {
			return resolveTypeName(inner, source)
		}
		return ""
	case "type_identifier", "identifier", "property_identifier":
		return extractNodeText(node, source)
	case "nested_type_identifier", "nested_identifier", "member_expression":
		return qualifiedName(node, source)
	case "predefined_type":
		return keywordName(node, source)
	case "literal_type":
		return literalTypeName(node, source)
	case "generic_type":
		return resolveTypeName(node.ChildByFieldName("name"), source)
	case "array_type":
		elem := resolveTypeName(node.NamedChild(0), source)
		if elem == "" {
			return ""
		}
		return elem + "[]"
	case "this_type":
		return "this"
	}
	return ""
}

// qualifiedName rebuilds a dotted name by walking the left spine of the
// qualifier chain and collecting right segments, then emitting them in
// source order.
func qualifiedName(node *sitter.Node, source []byte) string {
	var reversed []string
	current := node
	for {
		left := childByAnyField(current, qualifierLeftFields)
		right := childByAnyField(current, qualifierRightFields)
		if left == nil || right == nil {
			reversed = append(reversed, extractNodeText(current, source))
			break
		}
		reversed = append(reversed, extractNodeText(right, source))
		current = left
	}

	segments := make([]string, len(reversed))
	for i, segment := range reversed {
		segments[len(reversed)-1-i] = segment
	}
	return strings.Join(segments, ".")
}

// keywordName maps a predefined_type node to its canonical keyword name.
func keywordName(node *sitter.Node, source []byte) string {
	if node.ChildCount() == 1 {
		if name, ok := keywordTypeNames[node.Child(0).Kind()]; ok {
			return name
		}
	}
	// "unique symbol" is two tokens
	return keywordTypeNames[strings.Join(strings.Fields(extractNodeText(node, source)), " ")]
}

// literalTypeName resolves null/undefined/true/false through the keyword
// table; string and number literal types keep their source text.
func literalTypeName(node *sitter.Node, source []byte) string {
	literal := node.NamedChild(0)
	if literal == nil {
		return ""
	}
	switch literal.Kind() {
	case "string", "number", "unary_expression":
		return extractNodeText(literal, source)
	}
	return keywordTypeNames[literal.Kind()]
}

// resolveTypeAlternatives resolves a type annotation into union alternatives.
// A union contributes one alternative per member, left to right; any other
// type contributes a single alternative.
func resolveTypeAlternatives(node *sitter.Node, source []byte) [][]string {
	typeNode := node
	if typeNode != nil && typeNode.Kind() == "type_annotation" {
		typeNode = typeNode.NamedChild(0)
	}
	if typeNode == nil {
		return nil
	}
	if typeNode.Kind() != "union_type" {
		return [][]string{{resolveTypeName(typeNode, source)}}
	}

	var alternatives [][]string
	for _, member := range flattenUnion(typeNode) {
		alternatives = append(alternatives, []string{resolveTypeName(member, source)})
	}
	return alternatives
}

// flattenUnion lists the members of a union type in source order.
// tree-sitter nests unions left-recursively: A | B | C is ((A | B) | C).
func flattenUnion(node *sitter.Node) []*sitter.Node {
	var members []*sitter.Node
	for _, child := range namedChildren(node) {
		if child.Kind() == "union_type" {
			members = append(members, flattenUnion(child)...)
			continue
		}
		if child.Kind() == "comment" {
			continue
		}
		members = append(members, child)
	}
	return members
}

func childByAnyField(node *sitter.Node, fields []string) *sitter.Node {
	for _, field := range fields {
		if child := node.ChildByFieldName(field); child != nil {
			return child
		}
	}
	return nil
}
