package markdown

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvp-joe/typejuice/internal/extraction"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

// RenderFile extracts filePath with p and renders the result.
func RenderFile(ctx context.Context, p parsers.Parser, filePath string) (string, error) {
	entries, err := p.ParseFile(ctx, filePath)
	if err != nil {
		return "", err
	}
	return Render(entries), nil
}

// Render turns extracted entries into a markdown document. Entries are
// separated by one blank line and the document ends with a newline; no
// entries render as the empty string.
func Render(entries []extraction.StructureEntry) string {
	if len(entries) == 0 {
		return ""
	}

	sections := make([]string, 0, len(entries))
	for _, entry := range entries {
		sections = append(sections, renderEntry(entry))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func renderEntry(entry extraction.StructureEntry) string {
	blocks := []string{fmt.Sprintf("## %s: %s", entry.Kind, entry.Meta.DeclName())}

	switch meta := entry.Meta.(type) {
	case *extraction.InterfaceMeta:
		blocks = appendProperties(blocks, meta.Props)

	case *extraction.ClassMeta:
		if ctor := meta.Constructor; ctor != nil {
			blocks = append(blocks, ctor.Comments...)
			if len(ctor.Params) > 0 {
				blocks = append(blocks, renderFieldList(ctor.Params))
			}
		}
		blocks = appendProperties(blocks, meta.Props)

	case *extraction.FunctionMeta:
		// The parameters heading is always present for functions.
		blocks = append(blocks, "### Parameters")
		if len(meta.Params) > 0 {
			blocks = append(blocks, renderFieldList(meta.Params))
		}
		if len(meta.ReturnTypes) > 0 {
			blocks = append(blocks, "### Returns", renderTypes(meta.ReturnTypes))
		}
	}

	return strings.Join(blocks, "\n\n")
}

func appendProperties(blocks []string, props []extraction.FieldMeta) []string {
	if len(props) == 0 {
		return blocks
	}
	return append(blocks, "### Properties", renderFieldList(props))
}

func renderFieldList(fields []extraction.FieldMeta) string {
	items := make([]string, 0, len(fields))
	for _, field := range fields {
		items = append(items, renderField(field))
	}
	return strings.Join(items, "\n")
}

// renderField renders one bullet:
//
//	- **`name`**: **T1** | **T2** (optional)
//	  comment text
func renderField(field extraction.FieldMeta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **`%s`**: %s", field.Name, renderTypes(field.Types))
	if field.Optional {
		b.WriteString(" (optional)")
	}
	if len(field.Comments) > 0 {
		for _, line := range strings.Split(strings.Join(field.Comments, " "), "\n") {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
	}
	return b.String()
}

// renderTypes bolds every alternative and joins them with " | ", keeping
// declaration order.
func renderTypes(alternatives [][]string) string {
	var parts []string
	for _, alternative := range alternatives {
		for _, name := range alternative {
			parts = append(parts, "**"+name+"**")
		}
	}
	return strings.Join(parts, " | ")
}
