package watcher

import "context"

// ChangeWatcher monitors documents and declaration files for changes with
// debouncing and pause/resume support.
type ChangeWatcher interface {
	// Start begins watching, calling callback with each debounced batch of
	// changed paths, sorted.
	Start(ctx context.Context, callback func(paths []string)) error

	// Stop stops watching and releases resources. Safe to call more than once.
	Stop() error

	// Pause stops firing callbacks but keeps accumulating changes.
	Pause()

	// Resume fires any changes accumulated while paused, then continues.
	Resume()
}
