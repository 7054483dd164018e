package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/typejuice/internal/extraction"
	"github.com/mvp-joe/typejuice/internal/include"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

const (
	RenderToolName  = "typejuice_render"
	ExtractToolName = "typejuice_extract"
)

// AddRenderTool registers the typejuice_render tool with an MCP server.
func AddRenderTool(s *server.MCPServer, renderer include.Renderer, typeRoot string) {
	tool := mcp.NewTool(
		RenderToolName,
		mcp.WithDescription("Render the interfaces, classes and functions of a TypeScript declaration file as markdown reference documentation."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Declaration file path relative to the type root (e.g., 'ui/button.d.ts')")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createRenderHandler(renderer, typeRoot))
}

// AddExtractTool registers the typejuice_extract tool with an MCP server.
func AddExtractTool(s *server.MCPServer, parser parsers.Parser, typeRoot string) {
	tool := mcp.NewTool(
		ExtractToolName,
		mcp.WithDescription("Extract the declaration structure of a TypeScript declaration file: names, members, union types, optional markers and comments."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Declaration file path relative to the type root")),
		mcp.WithString("format",
			mcp.Description("Output format: json (default) or yaml")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createExtractHandler(parser, typeRoot))
}

func createRenderHandler(renderer include.Renderer, typeRoot string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args renderArgs
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		declPath, err := resolveTypePath(typeRoot, args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := renderer.Render(ctx, declPath)
		if err != nil {
			return toolError(args.Path, err)
		}
		return mcp.NewToolResultText(text), nil
	}
}

func createExtractHandler(parser parsers.Parser, typeRoot string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args extractArgs
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		format := extraction.FormatJSON
		if args.Format != "" {
			f, err := extraction.ParseFormat(args.Format)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			format = f
		}

		declPath, err := resolveTypePath(typeRoot, args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entries, err := parser.ParseFile(ctx, declPath)
		if err != nil {
			return toolError(args.Path, err)
		}

		data, err := extraction.Encode(entries, format)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// toolError reports missing files to the caller and treats anything else
// as a server failure.
func toolError(path string, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, fs.ErrNotExist) {
		return mcp.NewToolResultError(fmt.Sprintf("declaration file not found: %s", path)), nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	return mcp.NewToolResultError(err.Error()), nil
}
