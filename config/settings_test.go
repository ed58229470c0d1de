package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingsOverridesDefaults(t *testing.T) {
	s, err := ParseSettings(strings.NewReader(`
[grid]
width = 12
height = 8

[animation]
step_delay_ms = 0

[session]
clear_policy = "legacy"
solve_timeout_ms = 1500

[generator]
style = "maze"
seed = 42

[theme]
wall = "#000000"
path_step = "ffcc00"
`))
	require.NoError(t, err)

	assert.Equal(t, 900, s.Canvas.Width, "untouched sections keep defaults")
	assert.Equal(t, GridSettings{Width: 12, Height: 8}, s.Grid)
	assert.Equal(t, time.Duration(0), s.StepDelay())
	assert.Equal(t, "legacy", s.Session.ClearPolicy)
	assert.Equal(t, 1500*time.Millisecond, s.SolveTimeout())
	assert.Equal(t, "maze", s.Generator.Style)
	assert.Equal(t, 0.3, s.Generator.WallDensity)
	assert.Equal(t, int64(42), s.Generator.Seed)
	assert.Equal(t, map[string]string{"wall": "#000000", "path_step": "ffcc00"}, s.Theme)
}

func TestParseSettingsRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[grid]\ncolumns = 4\n"},
		{"single cell grid", "[grid]\nwidth = 1\nheight = 1\n"},
		{"negative delay", "[animation]\nstep_delay_ms = -1\n"},
		{"zero canvas", "[canvas]\nwidth = 0\n"},
		{"not toml", "grid = ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSettings(), s)
	})

	t.Run("no path", func(t *testing.T) {
		s, err := LoadSettings("")
		require.NoError(t, err)
		assert.Equal(t, 50*time.Millisecond, s.StepDelay())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pathviz.toml")
		require.NoError(t, os.WriteFile(path, []byte("[canvas]\nwidth = 400\nheight = 300\n"), 0o600))

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, CanvasSettings{Width: 400, Height: 300}, s.Canvas)
	})

	t.Run("bad file names the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[grid]\nwidth = 0\n"), 0o600))

		_, err := LoadSettings(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}
