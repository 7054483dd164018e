package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/typejuice/internal/config"
	"github.com/mvp-joe/typejuice/internal/include"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

// Test Plan for MCP Tools:
// - NewServer registers typejuice_render and typejuice_extract with read-only hints
// - typejuice_render returns the rendered markdown for a declaration file
// - typejuice_extract returns JSON by default and YAML on request
// - Missing path, unknown arguments and bad formats are tool errors
// - Absolute paths and paths escaping the type root are rejected
// - Missing declaration files are reported as tool errors, not server failures
// - String-typed arguments are trimmed

const widgetDecl = `interface Widget {
  // Display label.
  label: string;
  width?: number | string;
}
`

func newTypeRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ui"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ui", "widget.d.ts"), []byte(widgetDecl), 0644))
	return root
}

func callRequest(args interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return textContent.Text
}

func newRenderHandler(t *testing.T, typeRoot string) server.ToolHandlerFunc {
	t.Helper()

	cache, err := include.NewRenderCache(8, parsers.NewTypeScriptParser())
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return createRenderHandler(cache, typeRoot)
}

func TestNewServer_RegistersTools(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Paths.TypeRoot = newTypeRoot(t)

	s, err := NewServer(cfg, "test")
	require.NoError(t, err)
	defer s.Close()

	for _, name := range []string{RenderToolName, ExtractToolName} {
		tool := s.MCP().GetTool(name)
		require.NotNil(t, tool, name)
		require.NotNil(t, tool.Tool.Annotations.ReadOnlyHint)
		assert.True(t, *tool.Tool.Annotations.ReadOnlyHint)
		assert.Contains(t, tool.Tool.InputSchema.Required, "path")
	}
}

func TestRenderHandler_ValidRequest(t *testing.T) {
	t.Parallel()

	handler := newRenderHandler(t, newTypeRoot(t))
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": "ui/widget.d.ts"}))

	require.NoError(t, err, "should not return system error")
	assert.False(t, result.IsError)
	assert.Equal(t, "## Interface: Widget\n"+
		"\n"+
		"### Properties\n"+
		"\n"+
		"- **`label`**: **string**\n"+
		"  Display label.\n"+
		"- **`width`**: **number** | **string** (optional)\n", resultText(t, result))
}

func TestRenderHandler_TrimsArguments(t *testing.T) {
	t.Parallel()

	handler := newRenderHandler(t, newTypeRoot(t))
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": "  ui/widget.d.ts \n"}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "## Interface: Widget")
}

func TestRenderHandler_InvalidRequests(t *testing.T) {
	t.Parallel()

	typeRoot := newTypeRoot(t)
	handler := newRenderHandler(t, typeRoot)

	tests := []struct {
		name    string
		args    interface{}
		message string
	}{
		{"not a map", "ui/widget.d.ts", "invalid arguments format"},
		{"missing path", map[string]interface{}{}, "path parameter is required"},
		{"unknown argument", map[string]interface{}{"path": "ui/widget.d.ts", "depth": 2}, "depth"},
		{"absolute path", map[string]interface{}{"path": filepath.Join(typeRoot, "ui", "widget.d.ts")}, "relative to the type root"},
		{"escapes root", map[string]interface{}{"path": "../secrets.d.ts"}, "outside the type root"},
		{"missing file", map[string]interface{}{"path": "ui/missing.d.ts"}, "declaration file not found: ui/missing.d.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := handler(context.Background(), callRequest(tt.args))
			require.NoError(t, err, "should not return system error")
			assert.True(t, result.IsError, "should be error result")
			assert.Contains(t, resultText(t, result), tt.message)
		})
	}
}

func TestExtractHandler_JSON(t *testing.T) {
	t.Parallel()

	handler := createExtractHandler(parsers.NewTypeScriptParser(), newTypeRoot(t))
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": "ui/widget.d.ts"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Interface", entries[0]["kind"])

	props := entries[0]["meta"].(map[string]interface{})["props"].([]interface{})
	require.Len(t, props, 2)
	width := props[1].(map[string]interface{})
	assert.Equal(t, true, width["optional"])
	assert.Equal(t, []interface{}{[]interface{}{"number"}, []interface{}{"string"}}, width["types"])
}

func TestExtractHandler_YAML(t *testing.T) {
	t.Parallel()

	handler := createExtractHandler(parsers.NewTypeScriptParser(), newTypeRoot(t))
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": "ui/widget.d.ts", "format": "YAML"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var entries []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(resultText(t, result)), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Widget", entries[0]["meta"].(map[string]interface{})["name"])
}

func TestExtractHandler_InvalidFormat(t *testing.T) {
	t.Parallel()

	handler := createExtractHandler(parsers.NewTypeScriptParser(), newTypeRoot(t))
	result, err := handler(context.Background(), callRequest(map[string]interface{}{"path": "ui/widget.d.ts", "format": "xml"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "unknown format")
}

func TestResolveTypePath(t *testing.T) {
	t.Parallel()

	got, err := resolveTypePath("/types", "ui/./button.d.ts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/types", "ui", "button.d.ts"), got)

	got, err = resolveTypePath("/types", "ui/../button.d.ts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/types", "button.d.ts"), got)

	_, err = resolveTypePath("/types", "ui/../../etc/passwd")
	assert.Error(t, err)
}
