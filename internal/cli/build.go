package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/typejuice/internal/config"
	"github.com/mvp-joe/typejuice/internal/include"
	"github.com/mvp-joe/typejuice/internal/watcher"
)

var (
	buildWatchFlag bool
	buildQuietFlag bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Expand every document into the output directory",
	Long: `Build discovers the documents matching paths.docs (minus paths.ignore),
expands their inclusion directives and writes the results to output.dir,
preserving each document's path relative to the project root.

With --watch, build keeps running and rebuilds only the affected documents
when a document or an included declaration file changes.

Examples:
  # One-off build
  typejuice build

  # Rebuild on change
  typejuice build --watch`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&buildWatchFlag, "watch", "w", false, "Watch for changes and rebuild affected documents")
	buildCmd.Flags().BoolVarP(&buildQuietFlag, "quiet", "q", false, "Suppress progress output")
}

// buildOptions control one build invocation.
type buildOptions struct {
	watch   bool
	quiet   bool
	verbose bool

	// onWatching is called once the watcher is running.
	onWatching func()
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return executeBuild(ctx, cmd.OutOrStdout(), root, cfg, buildOptions{
		watch:   buildWatchFlag,
		quiet:   buildQuietFlag,
		verbose: verbose,
	})
}

func executeBuild(ctx context.Context, out io.Writer, root string, cfg *config.Config, opts buildOptions) error {
	discovery, err := include.NewDocumentDiscovery(root, cfg.Paths.Docs, cfg.Paths.Ignore, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to configure document discovery: %w", err)
	}

	expander, cache, err := newExpander(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	var progress include.ProgressReporter = &include.NoOpProgressReporter{}
	if !opts.quiet {
		progress = NewCLIProgressReporter(out, opts.verbose)
	}

	builder := include.NewBuilder(root, cfg.Output.Dir, discovery, expander,
		include.WithProgress(progress),
		include.WithVerbose(opts.verbose),
	)

	_, buildErr := builder.BuildAll(ctx)
	if !opts.watch {
		return buildErr
	}
	if buildErr != nil {
		log.Printf("Warning: initial build had errors: %v", buildErr)
	}

	return watchAndRebuild(ctx, out, root, cfg, builder, opts)
}

func watchAndRebuild(ctx context.Context, out io.Writer, root string, cfg *config.Config, builder *include.Builder, opts buildOptions) error {
	dirs := []string{root}
	if !within(root, cfg.Paths.TypeRoot) {
		dirs = append(dirs, cfg.Paths.TypeRoot)
	}

	w, err := watcher.New(watcher.Options{
		Dirs:     dirs,
		SkipDirs: []string{cfg.Output.Dir},
		Debounce: cfg.Debounce(),
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	err = w.Start(ctx, func(paths []string) {
		if opts.verbose {
			log.Printf("Detected %d changed files", len(paths))
		}
		if _, err := builder.HandleChanges(ctx, paths); err != nil {
			log.Printf("Warning: rebuild failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !opts.quiet {
		fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)...\n", strings.Join(dirs, ", "))
	}
	if opts.onWatching != nil {
		opts.onWatching()
	}

	<-ctx.Done()
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
