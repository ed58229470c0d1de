package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings is the visualizer settings file.
type Settings struct {
	Canvas    CanvasSettings    `toml:"canvas"`
	Grid      GridSettings      `toml:"grid"`
	Animation AnimationSettings `toml:"animation"`
	Session   SessionSettings   `toml:"session"`
	Generator GeneratorSettings `toml:"generator"`
	Theme     map[string]string `toml:"theme,omitempty"` // Slot name to hex color.
}

type CanvasSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// GridSettings is the size of the board at start and after clear.
type GridSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type AnimationSettings struct {
	StepDelayMS int `toml:"step_delay_ms"`
}

type SessionSettings struct {
	ClearPolicy    string `toml:"clear_policy"`
	SolveTimeoutMS int    `toml:"solve_timeout_ms"`
}

type GeneratorSettings struct {
	Style       string  `toml:"style"`
	WallDensity float64 `toml:"wall_density"`
	Seed        int64   `toml:"seed"`
}

func DefaultSettings() Settings {
	return Settings{
		Canvas:    CanvasSettings{Width: 900, Height: 600},
		Grid:      GridSettings{Width: 30, Height: 20},
		Animation: AnimationSettings{StepDelayMS: 50},
		Session:   SessionSettings{ClearPolicy: "reseed"},
		Generator: GeneratorSettings{Style: "scatter", WallDensity: 0.3},
	}
}

// StepDelay is the animation pause as a duration.
func (s Settings) StepDelay() time.Duration {
	return time.Duration(s.Animation.StepDelayMS) * time.Millisecond
}

// SolveTimeout is the bound on one solve, zero for none.
func (s Settings) SolveTimeout() time.Duration {
	return time.Duration(s.Session.SolveTimeoutMS) * time.Millisecond
}

func (s Settings) validate() error {
	switch {
	case s.Canvas.Width <= 0 || s.Canvas.Height <= 0:
		return fmt.Errorf("canvas must be positive, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	case s.Grid.Width <= 0 || s.Grid.Height <= 0 || s.Grid.Width*s.Grid.Height < 2:
		return fmt.Errorf("grid must hold at least two cells, got %dx%d", s.Grid.Width, s.Grid.Height)
	case s.Animation.StepDelayMS < 0:
		return errors.New("step_delay_ms must not be negative")
	case s.Session.SolveTimeoutMS < 0:
		return errors.New("solve_timeout_ms must not be negative")
	}
	return nil
}

// ParseSettings decodes a settings file over the defaults.
func ParseSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return s, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return s, fmt.Errorf("unknown settings key %q", undecoded[0].String())
	}
	return s, s.validate()
}

// LoadSettings reads the settings file at path. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	s, err := ParseSettings(f)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
