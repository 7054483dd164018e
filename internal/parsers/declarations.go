package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/typejuice/internal/extraction"
)

// extractInterface collects the property signatures of an interface.
// Method, call, construct and index signatures are skipped.
func extractInterface(node *sitter.Node, source []byte) *extraction.InterfaceMeta {
	meta := &extraction.InterfaceMeta{
		Name:  extractNodeText(node.ChildByFieldName("name"), source),
		Props: []extraction.FieldMeta{},
	}

	for _, member := range namedChildren(node.ChildByFieldName("body")) {
		if member.Kind() == "property_signature" {
			meta.Props = append(meta.Props, extractField(member, source))
		}
	}
	return meta
}

// extractClass separates the constructor from the property declarations of
// a class. Only the first constructor is used; overloads in declaration
// files repeat it.
func extractClass(node *sitter.Node, source []byte) *extraction.ClassMeta {
	meta := &extraction.ClassMeta{
		Name:  extractNodeText(node.ChildByFieldName("name"), source),
		Props: []extraction.FieldMeta{},
	}

	for _, member := range namedChildren(node.ChildByFieldName("body")) {
		switch member.Kind() {
		case "public_field_definition":
			meta.Props = append(meta.Props, extractField(member, source))
		case "method_definition", "method_signature":
			if meta.Constructor != nil || !isConstructor(member, source) {
				continue
			}
			meta.Constructor = &extraction.ConstructorMeta{
				Params:   extractParams(member.ChildByFieldName("parameters"), source),
				Comments: nodeComments(member, source),
			}
		}
	}
	return meta
}

// extractFunction builds the metadata of a function declaration or signature.
func extractFunction(node *sitter.Node, source []byte) *extraction.FunctionMeta {
	return &extraction.FunctionMeta{
		Name:        extractNodeText(node.ChildByFieldName("name"), source),
		Params:      extractParams(node.ChildByFieldName("parameters"), source),
		ReturnTypes: extractReturnTypes(node, source),
	}
}

func isConstructor(member *sitter.Node, source []byte) bool {
	return extractNodeText(member.ChildByFieldName("name"), source) == "constructor"
}
