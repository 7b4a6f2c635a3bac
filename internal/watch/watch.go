package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"smd-loader/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a single model file.
type Watcher struct {
	Debounce time.Duration
}

// New returns a Watcher with the default debounce window.
func New() *Watcher {
	return &Watcher{Debounce: DefaultDebounce}
}

// Watch calls onChange with the cleaned path each time the file is written or
// recreated, until ctx is cancelled. The parent directory is watched rather
// than the file so that save-by-rename keeps being observed.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(path string)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: init: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(target), err)
	}
	logger.Debug("watching %s", target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(target, ev) {
				continue
			}
			if w.Debounce <= 0 {
				onChange(target)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(target)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// relevant reports whether ev changes the contents of target.
func relevant(target string, ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
