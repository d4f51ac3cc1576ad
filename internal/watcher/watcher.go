// Package watcher reports changes to the data files of a directory.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory for changes to files matching any of a set of patterns
type Watcher struct {
	dir      string
	patterns []string
	onChange func(path string)
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a new directory watcher for files matching any of patterns
func New(dir string, patterns []string, onChange func(path string)) *Watcher {
	return &Watcher{
		dir:      dir,
		patterns: patterns,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		logger:   slog.Default(),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithLogger sets the logger
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	w.logger = logger
	return w
}

// Watch starts watching the directory for changes.
// It blocks until the context is cancelled or an error occurs.
// A burst of events yields one onChange call with the last changed path.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info("watching data directory", "dir", w.dir, "patterns", w.patterns)

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
		lastPath      string
	)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !w.matches(filepath.Base(event.Name)) {
				continue
			}

			// Files replaced by editors arrive as rename or remove plus create
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			mu.Lock()
			lastPath = event.Name
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				mu.Lock()
				path := lastPath
				mu.Unlock()
				w.logger.Info("data file changed", "path", path)
				w.onChange(path)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			return ctx.Err()
		}
	}
}

func (w *Watcher) matches(name string) bool {
	for _, pattern := range w.patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
