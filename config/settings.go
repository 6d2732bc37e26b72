package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings is the on-disk configuration, all sections optional
type Settings struct {
	Window WindowSettings `toml:"window"`
	Lanes  LaneSettings   `toml:"lanes"`
	Timing TimingSettings `toml:"timing"`
	Audio  AudioSettings  `toml:"audio"`
	Keys   KeySettings    `toml:"keys"`
	Seed   int64          `toml:"seed"`
}

// WindowSettings selects the simulated canvas
// When Display is set the canvas is derived from screen size and DPI instead
type WindowSettings struct {
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Display *Display `toml:"display"`
}

// LaneSettings fixes the lane width; zero keeps the derived one
type LaneSettings struct {
	Width int `toml:"width"`
}

// TimingSettings controls tick pacing and spawn debounce
type TimingSettings struct {
	Tick     Duration `toml:"tick"`
	Debounce Duration `toml:"debounce"`
}

// AudioSettings toggles sound cues
type AudioSettings struct {
	Enabled bool `toml:"enabled"`
}

// KeySettings maps actions to key names
// Names are tcell key names ("Up", "Esc") or single characters ("r")
type KeySettings struct {
	North  string `toml:"north"`
	South  string `toml:"south"`
	East   string `toml:"east"`
	West   string `toml:"west"`
	Random string `toml:"random"`
	Quit   string `toml:"quit"`
}

// Duration wraps time.Duration for TOML text values like "16ms"
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults: 960x720 canvas, 16px lanes, 16ms ticks and 128ms key debounce
const (
	DefaultWidth     = 960
	DefaultHeight    = 720
	DefaultLaneWidth = 16
	DefaultTick      = 16 * time.Millisecond
	DefaultDebounce  = 128 * time.Millisecond
)

// Default returns settings used when no file is given
func Default() Settings {
	return Settings{
		Window: WindowSettings{Width: DefaultWidth, Height: DefaultHeight},
		Lanes:  LaneSettings{Width: DefaultLaneWidth},
		Timing: TimingSettings{
			Tick:     Duration{DefaultTick},
			Debounce: Duration{DefaultDebounce},
		},
		Audio: AudioSettings{Enabled: true},
		Keys: KeySettings{
			North:  "Up",
			South:  "Down",
			East:   "Right",
			West:   "Left",
			Random: "r",
			Quit:   "Esc",
		},
	}
}

// Load reads a TOML settings file layered over Default
// Unknown keys are rejected so typos do not silently fall back to defaults
func Load(path string) (Settings, error) {
	s := Default()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return s, nil
}

// Validate checks timing and derived lane geometry
func (s Settings) Validate() error {
	if s.Timing.Tick.Duration <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", s.Timing.Tick.Duration)
	}
	if s.Timing.Debounce.Duration < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", s.Timing.Debounce.Duration)
	}
	if s.Lanes.Width < 0 {
		return fmt.Errorf("lane width must not be negative, got %d", s.Lanes.Width)
	}
	return s.LaneConfig().Validate()
}

// LaneConfig resolves the geometry once at startup
func (s Settings) LaneConfig() LaneConfig {
	if s.Window.Display != nil {
		return FromDisplay(*s.Window.Display, s.Lanes.Width)
	}
	lane := s.Lanes.Width
	if lane == 0 {
		lane = DefaultLaneWidth
	}
	return NewLaneConfig(s.Window.Width, s.Window.Height, lane)
}
