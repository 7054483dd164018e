package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/typejuice/internal/extraction"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

var (
	extractFormatFlag string
	extractOutputFlag string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the extracted declaration structure",
	Long: `Extract prints the structure model of a TypeScript declaration file:
each interface, class and function in source order with its members, union
type alternatives, optional markers and comment paragraphs.

Examples:
  typejuice extract types/ui/button.d.ts
  typejuice extract types/ui/button.d.ts --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractFormatFlag, "format", "f", "json", "Output format: json or yaml")
	extractCmd.Flags().StringVarP(&extractOutputFlag, "output", "o", "", "Write to a file instead of stdout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	return executeExtract(cmd.Context(), cmd.OutOrStdout(), args[0], extractFormatFlag, extractOutputFlag)
}

func executeExtract(ctx context.Context, w io.Writer, declPath, format, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := extraction.ParseFormat(format)
	if err != nil {
		return err
	}

	entries, err := parsers.NewTypeScriptParser().ParseFile(ctx, declPath)
	if err != nil {
		return err
	}

	data, err := extraction.Encode(entries, f)
	if err != nil {
		return err
	}
	return writeOutput(w, outPath, data)
}
