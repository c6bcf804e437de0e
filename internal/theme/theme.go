package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Colors is the palette of a theme. Values are lipgloss colours: ANSI
// numbers ("12") or hex ("#3b82f6"). An empty value leaves the terminal
// default in place.
type Colors struct {
	Text        string `toml:"text"`
	Muted       string `toml:"muted"`
	Placeholder string `toml:"placeholder"`
	Label       string `toml:"label"`
	Border      string `toml:"border"`
	Focus       string `toml:"focus"`
	Header      string `toml:"header"`
	Nav         string `toml:"nav"`
	Weekday     string `toml:"weekday"`
	Padding     string `toml:"padding"`
	Today       string `toml:"today"`
	TodayBg     string `toml:"today_bg"`
	SelectedFg  string `toml:"selected_fg"`
	SelectedBg  string `toml:"selected_bg"`
	Cursor      string `toml:"cursor"`
	Error       string `toml:"error"`
	Key         string `toml:"key"`
}

// Theme represents a colour theme with metadata.
type Theme struct {
	Name        string    `toml:"name"`
	Description string    `toml:"description"`
	Colors      Colors    `toml:"colors"`
	Path        string    `toml:"-"` // Full path to the file (empty for bundled)
	ModTime     time.Time `toml:"-"` // Last modification time
	IsBundled   bool      `toml:"-"` // True if loaded from the embedded themes
}

// Parse decodes a theme from TOML. Colours missing from data are taken from
// the default theme, so user themes may override only a few entries.
func Parse(name string, data []byte) (*Theme, error) {
	t := &Theme{}
	if base, ok := GetEmbeddedTheme(DefaultThemeName); ok && name != DefaultThemeName {
		if err := toml.Unmarshal([]byte(base), t); err != nil {
			return nil, fmt.Errorf("failed to parse default theme: %w", err)
		}
		t.Description = ""
	}
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
	}
	// The file name identifies the theme, whatever the file claims.
	t.Name = name
	return t, nil
}

// NewTheme creates a new Theme by loading a TOML file.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// NewBundledTheme loads an embedded theme.
func NewBundledTheme(name string) (*Theme, error) {
	data, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, fmt.Errorf("theme %q is not bundled", name)
	}
	t, err := Parse(name, []byte(data))
	if err != nil {
		return nil, err
	}
	t.IsBundled = true
	return t, nil
}

// NewDefaultTheme creates the embedded default theme.
func NewDefaultTheme() *Theme {
	t, err := NewBundledTheme(DefaultThemeName)
	if err != nil {
		// The default theme is compiled in; failing here is a build defect.
		panic(err)
	}
	return t
}

// Reload reloads the theme from disk.
// Returns true if the colours changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}

	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}

	changed := fresh.Colors != t.Colors
	t.Colors = fresh.Colors
	t.Description = fresh.Description
	t.ModTime = fresh.ModTime

	return changed, nil
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	IsDefault bool   `json:"default" yaml:"default"`
	IsBundled bool   `json:"bundled" yaml:"bundled"` // True if this is a bundled/embedded theme
}

// ListAvailableThemes lists all available themes (bundled + user) found in
// themesDir. User themes shadowing a bundled name are reported once, with
// their path.
func ListAvailableThemes(themesDir string) ([]ThemeInfo, error) {
	index := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		if _, ok := index[name]; !ok {
			index[name] = len(themes)
			themes = append(themes, ThemeInfo{
				Name:      name,
				IsDefault: name == DefaultThemeName,
				IsBundled: true,
			})
		}
	}

	if themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != themeExt {
			continue
		}
		themeName := entry.Name()[:len(entry.Name())-len(themeExt)]
		path := filepath.Join(themesDir, entry.Name())
		if i, ok := index[themeName]; ok {
			themes[i].Path = path
			themes[i].IsBundled = false
			continue
		}
		index[themeName] = len(themes)
		themes = append(themes, ThemeInfo{Name: themeName, Path: path})
	}

	return themes, nil
}
