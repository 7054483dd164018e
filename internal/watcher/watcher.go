package watcher

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// DefaultExtensions are the file types a documentation build depends on.
var DefaultExtensions = []string{".md", ".ts", ".tsx"}

var ErrNoDirectories = errors.New("no directories to watch")

// Options configures a change watcher.
type Options struct {
	// Dirs are watched recursively. Duplicates and nested dirs are fine.
	Dirs []string

	// Extensions to report, including the dot. Defaults to DefaultExtensions.
	Extensions []string

	// SkipDirs are never watched, such as the build output directory.
	SkipDirs []string

	// Debounce is the quiet period before a batch fires.
	Debounce time.Duration
}

// changeWatcher implements ChangeWatcher on top of fsnotify.
type changeWatcher struct {
	fsw        *fsnotify.Watcher
	extensions map[string]bool
	skipDirs   []string
	debounce   time.Duration

	callback func(paths []string)
	cancel   context.CancelFunc

	mu      sync.Mutex
	paused  bool
	pending map[string]struct{}
	timer   *time.Timer

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a watcher over opts.Dirs. Every directory must exist.
func New(opts Options) (ChangeWatcher, error) {
	if len(opts.Dirs) == 0 {
		return nil, ErrNoDirectories
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[strings.ToLower(ext)] = true
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	cw := &changeWatcher{
		fsw:        fsw,
		extensions: extMap,
		debounce:   debounce,
		pending:    make(map[string]struct{}),
		doneCh:     make(chan struct{}),
	}
	for _, dir := range opts.SkipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			cw.skipDirs = append(cw.skipDirs, abs)
		}
	}

	for _, dir := range opts.Dirs {
		if err := cw.addTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return cw, nil
}

// Start begins watching for changes.
func (cw *changeWatcher) Start(ctx context.Context, callback func(paths []string)) error {
	if callback == nil {
		return nil
	}

	cw.callback = callback
	ctx, cw.cancel = context.WithCancel(ctx)

	go cw.loop(ctx)
	return nil
}

// Stop stops the watcher.
func (cw *changeWatcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		if cw.cancel != nil {
			cw.cancel()
			<-cw.doneCh
		} else {
			close(cw.doneCh)
		}
		err = cw.fsw.Close()
	})
	return err
}

// Pause stops firing callbacks but keeps accumulating changes.
func (cw *changeWatcher) Pause() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.paused = true
}

// Resume fires accumulated changes immediately if any arrived while paused.
func (cw *changeWatcher) Resume() {
	cw.mu.Lock()
	wasPaused := cw.paused
	cw.paused = false
	cw.mu.Unlock()

	if wasPaused {
		cw.flush()
	}
}

func (cw *changeWatcher) loop(ctx context.Context) {
	defer close(cw.doneCh)

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			cw.stopTimer()
			return

		case event, ok := <-cw.fsw.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := cw.addTree(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !cw.relevant(event) {
				continue
			}

			cw.mu.Lock()
			cw.pending[event.Name] = struct{}{}
			cw.mu.Unlock()

			cw.resetTimer(fire)

		case <-fire:
			cw.mu.Lock()
			paused := cw.paused
			cw.mu.Unlock()
			if !paused {
				cw.flush()
			}

		case err, ok := <-cw.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// flush hands the accumulated paths to the callback.
func (cw *changeWatcher) flush() {
	cw.mu.Lock()
	if len(cw.pending) == 0 {
		cw.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(cw.pending))
	for path := range cw.pending {
		paths = append(paths, path)
	}
	cw.pending = make(map[string]struct{})
	cw.mu.Unlock()

	sort.Strings(paths)
	if cw.callback != nil {
		cw.callback(paths)
	}
}

func (cw *changeWatcher) resetTimer(fire chan struct{}) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (cw *changeWatcher) stopTimer() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
		cw.timer = nil
	}
}

// relevant reports whether event changes a file with a watched extension.
// Renames count because editors often save by renaming a temp file.
func (cw *changeWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if cw.skipped(event.Name) {
		return false
	}
	return cw.extensions[strings.ToLower(filepath.Ext(event.Name))]
}

func (cw *changeWatcher) skipped(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for _, dir := range cw.skipDirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addTree watches root and every directory below it, skipping hidden
// directories, node_modules and configured skip directories.
func (cw *changeWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != root {
			name := d.Name()
			if strings.HasPrefix(name, ".") || name == "node_modules" || cw.skipped(path) {
				return filepath.SkipDir
			}
		}

		if err := cw.fsw.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
