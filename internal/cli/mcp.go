package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/typejuice/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for declaration docs",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
read TypeScript declarations as documentation.

The MCP server:
- Renders declaration files as markdown via the typejuice_render tool
- Returns the structure model via the typejuice_extract tool
- Resolves tool paths against the configured type root
- Communicates via stdio (standard MCP transport)

Example:
  typejuice mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Typejuice MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project Root: %s\n", root)
	fmt.Fprintf(os.Stderr, "Type Root: %s\n\n", cfg.Paths.TypeRoot)

	server, err := mcp.NewServer(cfg, Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
