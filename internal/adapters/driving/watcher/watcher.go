// Package watcher reloads the in-process knowledge base when another
// process replaces the vector index artifact.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// DefaultDebounce collapses the burst of events a rename produces.
const DefaultDebounce = 250 * time.Millisecond

// IndexWatcher watches the artifact's directory, since the artifact is
// replaced by rename and a watch on the file itself would be lost.
type IndexWatcher struct {
	path     string
	reloader driving.Reloader
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// Watch starts watching the directory holding path. Call Run to process events.
func Watch(path string, reloader driving.Reloader) (*IndexWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve index path: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &IndexWatcher{
		path:     abs,
		reloader: reloader,
		debounce: DefaultDebounce,
		fs:       fs,
	}, nil
}

// SetDebounce overrides the debounce window.
func (w *IndexWatcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *IndexWatcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debug("Index artifact changed: %s", ev)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Index watcher error: %v", err)

		case <-fire:
			fire = nil
			if err := w.reloader.Reload(ctx); err != nil {
				logger.Warn("Index reload failed: %v", err)
				continue
			}
			logger.Info("Reloaded vector index after external rebuild")
		}
	}
}

func (w *IndexWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove)
}
