package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Loader resolves themes by name and keeps the current one, with optional
// hot-reload of user theme files.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	themesDir   string
	currentName string
	theme       *Theme
	watcher     *Watcher
}

// NewLoader creates a new theme loader reading user themes from themesDir.
// An empty themesDir restricts the loader to bundled themes.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		logger:    logger,
		themesDir: themesDir,
	}
}

// LoadTheme loads a theme by name and makes it current.
// Theme resolution order:
//  1. User themes directory (~/.config/datepick/themes/)
//  2. Embedded/bundled themes
//  3. The default theme
//
// This allows users to override bundled themes by placing a file with the same name
// in their themes directory.
func (l *Loader) LoadTheme(name string) *Theme {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	// First, check user themes directory
	if l.themesDir != "" {
		themePath := filepath.Join(l.themesDir, name+themeExt)
		if _, err := os.Stat(themePath); err == nil {
			theme, err := NewTheme(name, themePath)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
			} else {
				l.set(theme)
				l.logger.Info("loaded user theme", "name", name, "path", themePath)
				return theme
			}
		}
	}

	// Second, check embedded themes
	if IsEmbeddedTheme(name) {
		theme, err := NewBundledTheme(name)
		if err == nil {
			l.set(theme)
			l.logger.Info("loaded bundled theme", "name", name)
			return theme
		}
		l.logger.Warn("failed to load bundled theme", "theme", name, "error", err)
	}

	// Fallback to default theme
	l.logger.Warn("theme not found, using default", "theme", name)
	theme := NewDefaultTheme()
	l.set(theme)
	return theme
}

func (l *Loader) set(theme *Theme) {
	l.theme = theme
	l.currentName = theme.Name
}

// GetTheme returns the currently loaded theme, loading the default theme if
// nothing has been loaded yet.
func (l *Loader) GetTheme() *Theme {
	l.mu.RLock()
	theme := l.theme
	l.mu.RUnlock()

	if theme == nil {
		return l.LoadTheme(DefaultThemeName)
	}
	return theme
}

// Reload reloads the current theme from disk.
func (l *Loader) Reload() *Theme {
	return l.LoadTheme(l.CurrentTheme())
}

// StartHotReload starts watching the current theme for changes. onChange is
// called with the new theme after it becomes current.
func (l *Loader) StartHotReload(ctx context.Context, onChange func(*Theme)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.IsBundled {
		l.logger.Debug("not starting hot-reload for bundled theme")
		return
	}

	// Stop existing watcher if any
	if l.watcher != nil {
		_ = l.watcher.Stop()
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(theme *Theme) {
		l.mu.Lock()
		l.theme = theme
		l.mu.Unlock()
		l.logger.Info("hot-reloaded theme", "name", theme.Name)
		if onChange != nil {
			onChange(theme)
		}
	})

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
		l.watcher = nil
	}
}

// StopHotReload stops watching the theme for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		if err := w.Stop(); err != nil {
			l.logger.Debug("failed to close theme watcher", "error", err)
		}
	}
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}

// ListThemes returns a list of available theme names.
// Returns both bundled themes and user themes, with duplicates removed.
func (l *Loader) ListThemes() []string {
	infos, err := ListAvailableThemes(l.themesDir)
	if err != nil {
		l.logger.Debug("failed to read themes directory", "error", err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}
