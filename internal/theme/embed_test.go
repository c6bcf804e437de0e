package theme

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme_Default(t *testing.T) {
	data, found := GetEmbeddedTheme("default")
	require.True(t, found, "default theme should be found")
	assert.NotEmpty(t, data)
	assert.Contains(t, data, "[colors]")
	assert.Contains(t, data, "selected_bg")
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	data, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
	assert.Empty(t, data)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()

	// Should have all bundled themes
	assert.GreaterOrEqual(t, len(themes), 3)
	for _, name := range BundledThemes {
		assert.Contains(t, themes, name)
	}
}

func TestIsEmbeddedTheme(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", true},
		{"light", true},
		{"catppuccin", true},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsEmbeddedTheme(tt.name)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEmbeddedThemesAreComplete(t *testing.T) {
	for _, name := range ListEmbeddedThemes() {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedTheme(name)
			require.True(t, found)

			var th Theme
			require.NoError(t, toml.Unmarshal([]byte(data), &th))

			assert.Equal(t, name, th.Name, "file name and theme name should match")
			assert.NotEmpty(t, th.Description)
			assert.NotEmpty(t, th.Colors.Text)
			assert.NotEmpty(t, th.Colors.Border)
			assert.NotEmpty(t, th.Colors.Focus)
			assert.NotEmpty(t, th.Colors.SelectedBg)
			assert.NotEmpty(t, th.Colors.Today)
		})
	}
}
