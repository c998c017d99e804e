// Package watch re-runs a callback whenever catalog sources change on disk.
// Events are debounced and the callback always runs on the goroutine that
// called Run, so runs never overlap.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a re-run.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a set of directories. fsnotify is not recursive, so the
// immediate subdirectories of each watched directory are added as well
// (apps/<id>/metadata.yaml lives one level down).
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	closed   bool
}

// New watches dirs. Missing directories are skipped.
func New(dirs []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{watcher: fw, debounce: debounce}

	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches dir and its immediate subdirectories.
func (w *Watcher) addTree(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if err := w.watcher.Add(sub); err != nil {
			return fmt.Errorf("watching %s: %w", sub, err)
		}
	}
	return nil
}

// Run calls fn once, then again after every burst of relevant events, until
// ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context)) error {
	fn(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !Relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New app directories must be watched too.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			fn(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// Relevant reports whether a change to name can affect validation. Lease
// files and the temporary files of atomic writes are ignored.
func Relevant(name string) bool {
	base := filepath.Base(name)
	switch {
	case strings.HasSuffix(base, ".lock"):
		return false
	case strings.HasPrefix(base, ".") && strings.Contains(base, ".tmp"):
		return false
	case strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp"):
		return false
	}
	return true
}
