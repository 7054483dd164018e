package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/typejuice/internal/config"
	"github.com/mvp-joe/typejuice/internal/include"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

var includeOutputFlag string

// includeCmd represents the include command
var includeCmd = &cobra.Command{
	Use:   "include <document>",
	Short: "Expand inclusion directives in one document",
	Long: `Include replaces every line of the form

  <<< typejuice:<path>

with the rendered markdown of <type-root>/<path> and prints the result. All
other lines are copied unchanged.

Examples:
  typejuice include docs/guide.md
  typejuice include docs/guide.md -o dist/guide.md`,
	Args: cobra.ExactArgs(1),
	RunE: runInclude,
}

func init() {
	rootCmd.AddCommand(includeCmd)
	includeCmd.Flags().StringVarP(&includeOutputFlag, "output", "o", "", "Write to a file instead of stdout")
}

func runInclude(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadProject()
	if err != nil {
		return err
	}
	return executeInclude(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], includeOutputFlag)
}

func executeInclude(ctx context.Context, w io.Writer, cfg *config.Config, docPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	expander, cache, err := newExpander(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	text, _, err := expander.ExpandFile(ctx, docPath)
	if err != nil {
		return err
	}
	return writeOutput(w, outPath, []byte(text))
}

// newExpander builds a cached expander over the configured type root.
func newExpander(cfg *config.Config) (*include.Expander, *include.RenderCache, error) {
	cache, err := include.NewRenderCache(cfg.Cache.Capacity, parsers.NewTypeScriptParser())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create render cache: %w", err)
	}
	return include.NewExpander(cfg.Paths.TypeRoot, cache), cache, nil
}
