package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/typejuice/internal/extraction"
)

// extractField builds a FieldMeta from any named, possibly optional, typed
// node: property_signature, public_field_definition, required_parameter or
// optional_parameter.
func extractField(node *sitter.Node, source []byte) extraction.FieldMeta {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = node.ChildByFieldName("pattern")
	}

	types := resolveTypeAlternatives(node.ChildByFieldName("type"), source)
	if len(types) == 0 {
		// Unannotated members still carry one (absent) alternative.
		types = [][]string{{""}}
	}

	return extraction.FieldMeta{
		Name:     extractNodeText(nameNode, source),
		Optional: node.Kind() == "optional_parameter" || hasToken(node, "?"),
		Types:    types,
		Comments: nodeComments(node, source),
	}
}

// extractParams builds FieldMeta records for a formal_parameters node.
func extractParams(params *sitter.Node, source []byte) []extraction.FieldMeta {
	fields := []extraction.FieldMeta{}
	for _, param := range namedChildren(params) {
		switch param.Kind() {
		case "required_parameter", "optional_parameter":
			fields = append(fields, extractField(param, source))
		}
	}
	return fields
}

// extractReturnTypes resolves a callable's return_type annotation. A missing
// annotation yields no alternatives.
func extractReturnTypes(callable *sitter.Node, source []byte) [][]string {
	returnTypes := resolveTypeAlternatives(callable.ChildByFieldName("return_type"), source)
	if returnTypes == nil {
		return [][]string{}
	}
	return returnTypes
}
