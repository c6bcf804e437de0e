package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a user theme file for changes and triggers hot-reload.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Private copy of the theme being watched
	theme *Theme

	watcher *fsnotify.Watcher

	// Callback for changes
	onChangeCallback func(*Theme)

	done    chan struct{}
	stopped chan struct{}
	running bool
}

// NewWatcher creates a new theme watcher.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	cp := *theme
	return &Watcher{
		logger: logger,
		theme:  &cp,
	}
}

// SetChangeCallback sets the callback to invoke when the theme changes.
// The callback receives a fresh copy of the theme and runs on the watcher
// goroutine.
func (w *Watcher) SetChangeCallback(callback func(*Theme)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching the theme file for changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	// Bundled themes are embedded and never change.
	if w.theme.IsBundled || w.theme.Path == "" {
		w.logger.Debug("not watching bundled theme", "theme", w.theme.Name)
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory containing the file; editors often replace the
	// file rather than writing it in place.
	if err := fsw.Add(filepath.Dir(w.theme.Path)); err != nil {
		fsw.Close()
		return err
	}

	w.watcher = fsw
	w.done = make(chan struct{})
	w.stopped = make(chan struct{})
	w.running = true

	go w.watch(ctx, fsw, w.done, w.stopped)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch(ctx context.Context, fsw *fsnotify.Watcher, done, stopped chan struct{}) {
	defer close(stopped)

	filename := filepath.Base(w.theme.Path)

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.checkForChanges()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-done:
			return
		}
	}
}

// checkForChanges reloads the theme and reports a change.
func (w *Watcher) checkForChanges() {
	w.mu.Lock()
	changed, err := w.theme.Reload()
	callback := w.onChangeCallback
	fresh := *w.theme
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("failed to reload theme", "path", fresh.Path, "error", err)
		return
	}

	if changed {
		w.logger.Info("theme file changed, reloading", "path", fresh.Path)
		if callback != nil {
			callback(&fresh)
		}
	}
}

// Stop stops watching the theme file.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.done)
	stopped := w.stopped
	fsw := w.watcher
	w.mu.Unlock()

	<-stopped
	w.logger.Debug("theme watcher stopped")
	return fsw.Close()
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
