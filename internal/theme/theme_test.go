package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTheme writes a theme file and backdates it so a later write is seen
// as a modification.
func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name+".toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))
	return path
}

func TestParse_OverlaysDefault(t *testing.T) {
	def := NewDefaultTheme()

	th, err := Parse("custom", []byte("[colors]\nselected_bg = \"#ff0000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "custom", th.Name)
	assert.Equal(t, "#ff0000", th.Colors.SelectedBg)
	// Untouched colours come from the default theme
	assert.Equal(t, def.Colors.Text, th.Colors.Text)
	assert.Equal(t, def.Colors.Border, th.Colors.Border)
	assert.Empty(t, th.Description)
}

func TestParse_NameFromFile(t *testing.T) {
	th, err := Parse("mine", []byte("name = \"something-else\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "mine", th.Name)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("broken", []byte("[colors\n"))
	assert.Error(t, err)
}

func TestNewTheme(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean", "description = \"Deep blue\"\n[colors]\nfocus = \"#0077be\"\n")

	th, err := NewTheme("ocean", path)
	require.NoError(t, err)

	assert.Equal(t, "ocean", th.Name)
	assert.Equal(t, "Deep blue", th.Description)
	assert.Equal(t, "#0077be", th.Colors.Focus)
	assert.Equal(t, path, th.Path)
	assert.False(t, th.IsBundled)
	assert.False(t, th.ModTime.IsZero())
}

func TestNewTheme_Missing(t *testing.T) {
	_, err := NewTheme("nope", "/nonexistent/nope.toml")
	assert.Error(t, err)
}

func TestNewBundledTheme(t *testing.T) {
	th, err := NewBundledTheme("light")
	require.NoError(t, err)
	assert.Equal(t, "light", th.Name)
	assert.True(t, th.IsBundled)
	assert.Empty(t, th.Path)

	_, err = NewBundledTheme("nonexistent")
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean", "[colors]\nfocus = \"#0077be\"\n")

	th, err := NewTheme("ocean", path)
	require.NoError(t, err)

	// Unmodified file
	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("[colors]\nfocus = \"#ff00ff\"\n"), 0644))
	now := time.Now()
	require.NoError(t, os.Chtimes(path, now, now))

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "#ff00ff", th.Colors.Focus)
}

func TestReload_Bundled(t *testing.T) {
	th := NewDefaultTheme()
	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestListAvailableThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "ocean", "")
	writeTheme(t, dir, "light", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	themes, err := ListAvailableThemes(dir)
	require.NoError(t, err)

	byName := make(map[string]ThemeInfo)
	for _, info := range themes {
		byName[info.Name] = info
	}

	assert.Len(t, themes, len(ListEmbeddedThemes())+1)
	assert.True(t, byName["default"].IsDefault)
	assert.True(t, byName["default"].IsBundled)

	// User file shadows the bundled theme
	assert.False(t, byName["light"].IsBundled)
	assert.Equal(t, filepath.Join(dir, "light.toml"), byName["light"].Path)

	assert.Equal(t, filepath.Join(dir, "ocean.toml"), byName["ocean"].Path)
	assert.NotContains(t, byName, "notes")
}

func TestListAvailableThemes_MissingDir(t *testing.T) {
	themes, err := ListAvailableThemes("/nonexistent/themes")
	require.NoError(t, err)
	assert.Len(t, themes, len(ListEmbeddedThemes()))
}

func TestLoader_Resolution(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "light", "[colors]\nfocus = \"#123456\"\n")

	l := NewLoader(dir, nil)

	// User theme overrides the bundled one
	th := l.LoadTheme("light")
	assert.Equal(t, "#123456", th.Colors.Focus)
	assert.False(t, th.IsBundled)
	assert.Equal(t, "light", l.CurrentTheme())

	th = l.LoadTheme("catppuccin")
	assert.True(t, th.IsBundled)
	assert.Equal(t, "catppuccin", l.CurrentTheme())

	th = l.LoadTheme("does-not-exist")
	assert.Equal(t, DefaultThemeName, th.Name)
	assert.Equal(t, DefaultThemeName, l.CurrentTheme())

	th = l.LoadTheme("")
	assert.Equal(t, DefaultThemeName, th.Name)
}

func TestLoader_BrokenUserThemeFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "catppuccin", "[colors\n")

	l := NewLoader(dir, nil)
	th := l.LoadTheme("catppuccin")
	assert.True(t, th.IsBundled)
	assert.Equal(t, "catppuccin", th.Name)
}

func TestLoader_GetThemeLoadsDefault(t *testing.T) {
	l := NewLoader("", nil)
	th := l.GetTheme()
	require.NotNil(t, th)
	assert.Equal(t, DefaultThemeName, th.Name)
}

func TestLoader_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean", "[colors]\nfocus = \"#000001\"\n")

	l := NewLoader(dir, nil)
	l.LoadTheme("ocean")

	require.NoError(t, os.WriteFile(path, []byte("[colors]\nfocus = \"#000002\"\n"), 0644))
	th := l.Reload()
	assert.Equal(t, "#000002", th.Colors.Focus)
	assert.Same(t, th, l.GetTheme())
}

func TestLoader_ListThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "ocean", "")

	l := NewLoader(dir, nil)
	names := l.ListThemes()
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "ocean")
}

func TestWatcher_BundledIsNoop(t *testing.T) {
	w := NewWatcher(NewDefaultTheme(), nil)
	require.NoError(t, w.Start(context.Background()))
	assert.False(t, w.IsRunning())
	assert.NoError(t, w.Stop())
}

func TestWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean", "[colors]\nfocus = \"#000001\"\n")

	th, err := NewTheme("ocean", path)
	require.NoError(t, err)

	changes := make(chan *Theme, 4)
	w := NewWatcher(th, nil)
	w.SetChangeCallback(func(fresh *Theme) { changes <- fresh })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx))
	defer w.Stop()
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(path, []byte("[colors]\nfocus = \"#000002\"\n"), 0644))

	select {
	case fresh := <-changes:
		assert.Equal(t, "#000002", fresh.Colors.Focus)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for theme change")
	}

	// The theme passed in is not mutated
	assert.Equal(t, "#000001", th.Colors.Focus)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean", "")
	th, err := NewTheme("ocean", path)
	require.NoError(t, err)

	w := NewWatcher(th, nil)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	assert.NoError(t, w.Stop())
}

func TestLoader_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "ocean", "[colors]\nfocus = \"#000001\"\n")

	l := NewLoader(dir, nil)
	l.LoadTheme("ocean")

	changes := make(chan *Theme, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l.StartHotReload(ctx, func(th *Theme) { changes <- th })
	defer l.StopHotReload()

	require.NoError(t, os.WriteFile(path, []byte("[colors]\nfocus = \"#000003\"\n"), 0644))

	select {
	case th := <-changes:
		assert.Equal(t, "#000003", th.Colors.Focus)
		assert.Equal(t, "#000003", l.GetTheme().Colors.Focus)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for hot reload")
	}
}

func TestStyles(t *testing.T) {
	th := NewDefaultTheme()
	s := th.Styles()

	assert.Equal(t, lipgloss.Color(th.Colors.SelectedBg), s.Selected.GetBackground())
	assert.Equal(t, lipgloss.Color(th.Colors.Focus), s.TriggerFocused.GetBorderTopForeground())
	assert.Equal(t, lipgloss.Color(th.Colors.Border), s.Trigger.GetBorderTopForeground())
	assert.True(t, s.Today.GetBold())

	// Empty colours fall back to the terminal default
	assert.Equal(t, lipgloss.NoColor{}, s.Today.GetBackground())
}
