package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/typejuice/internal/markdown"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

var renderOutputFlag string

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a declaration file as markdown",
	Long: `Render extracts the interfaces, classes and functions of a TypeScript
declaration file and prints them as markdown reference documentation.

Examples:
  typejuice render types/ui/button.d.ts
  typejuice render types/ui/button.d.ts -o docs/button.md`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutputFlag, "output", "o", "", "Write to a file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	return executeRender(cmd.Context(), cmd.OutOrStdout(), args[0], renderOutputFlag)
}

func executeRender(ctx context.Context, w io.Writer, declPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := markdown.RenderFile(ctx, parsers.NewTypeScriptParser(), declPath)
	if err != nil {
		return err
	}
	return writeOutput(w, outPath, []byte(text))
}
