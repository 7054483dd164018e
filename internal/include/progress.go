package include

import "time"

// ProgressReporter provides callbacks for reporting build progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnBuildStart is called once the documents to build are known.
	OnBuildStart(totalDocs int)

	// OnDocumentBuilt is called after each document is written.
	OnDocumentBuilt(docPath string)

	// OnDocumentFailed is called when a document cannot be built.
	OnDocumentFailed(docPath string, err error)

	// OnComplete is called when the build finishes.
	OnComplete(stats *BuildStats)
}

// BuildStats summarizes one build run.
type BuildStats struct {
	Documents  int
	Directives int
	Failed     int
	Duration   time.Duration
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnBuildStart(totalDocs int)                 {}
func (n *NoOpProgressReporter) OnDocumentBuilt(docPath string)             {}
func (n *NoOpProgressReporter) OnDocumentFailed(docPath string, err error) {}
func (n *NoOpProgressReporter) OnComplete(stats *BuildStats)               {}
