package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/typejuice/internal/include"
)

// CLIProgressReporter reports build progress with a progress bar.
type CLIProgressReporter struct {
	out     io.Writer
	verbose bool
	bar     *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{out: out, verbose: verbose}
}

func (c *CLIProgressReporter) OnBuildStart(totalDocs int) {
	if c.bar != nil {
		c.bar.Finish()
	}
	c.bar = progressbar.NewOptions(totalDocs,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Building docs"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("docs/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnDocumentBuilt(docPath string) {
	if c.bar != nil {
		c.bar.Add(1)
	}
	if c.verbose {
		log.Printf("Built %s", docPath)
	}
}

func (c *CLIProgressReporter) OnDocumentFailed(docPath string, err error) {
	if c.bar != nil {
		c.bar.Add(1)
	}
	log.Printf("Warning: failed to build %s: %v", docPath, err)
}

func (c *CLIProgressReporter) OnComplete(stats *include.BuildStats) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}

	fmt.Fprintf(c.out, "✓ Build complete: %d documents, %d directives in %.1fs\n",
		stats.Documents, stats.Directives, stats.Duration.Seconds())
	if stats.Failed > 0 {
		fmt.Fprintf(c.out, "  Failed: %d\n", stats.Failed)
	}
}
