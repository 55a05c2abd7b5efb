// Package filewatcher monitors the corpus directory and signals when
// its documents change, so ingestion can be re-run automatically.
package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/verita-labs/verita-cli/internal/logger"
)

// DefaultDebounce batches bursts of file events into one trigger.
const DefaultDebounce = 2 * time.Second

// corpusExtensions are the file types that trigger re-ingestion.
var corpusExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".pptx": {},
	".xlsx": {},
	".txt":  {},
}

// Watcher emits a trigger whenever corpus documents are added, changed
// or removed. Events inside the debounce window collapse into one
// trigger.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New creates a corpus watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{watcher: w, debounce: debounce}, nil
}

// Watch starts monitoring root and its per-type subdirectories.
// The returned channel delivers one value per debounced change burst
// and closes when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan struct{}, error) {
	if err := w.watcher.Add(root); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := w.watcher.Add(filepath.Join(root, entry.Name())); err != nil {
				logger.Warn("watch %s: %v", entry.Name(), err)
			}
		}
	}

	triggers := make(chan struct{}, 1)

	go func() {
		defer close(triggers)

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				logger.Debug("corpus change: %s %s", event.Op, event.Name)
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					timerC = timer.C
				} else {
					timer.Reset(w.debounce)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case triggers <- struct{}{}:
				default:
					// A trigger is already pending.
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("corpus watcher: %v", err)
			}
		}
	}()

	return triggers, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// relevant reports whether an event should trigger re-ingestion. New
// subdirectories are added to the watch as a side effect so documents
// dropped into them are seen.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				logger.Warn("watch %s: %v", event.Name, err)
			}
			return false
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	_, ok := corpusExtensions[ext]
	return ok
}
