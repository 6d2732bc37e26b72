package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smart-road.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewLaneConfig(t *testing.T) {
	cfg := NewLaneConfig(960, 720, 16)

	assert.Equal(t, 480, cfg.HalfWidth)
	assert.Equal(t, 360, cfg.HalfHeight)
	assert.Equal(t, Speed{Fast: 12, Default: 8, Slow: 4}, cfg.Speed)
	require.NoError(t, cfg.Validate())

	x, y, side := cfg.CentralBox()
	assert.Equal(t, 432, x)
	assert.Equal(t, 312, y)
	assert.Equal(t, 96, side)
}

func TestLaneConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  LaneConfig
	}{
		{"zero lane", NewLaneConfig(960, 720, 0)},
		{"window too narrow", NewLaneConfig(100, 720, 16)},
		{"slow tier stalls", NewLaneConfig(960, 720, 3)},
		{"half mismatch", LaneConfig{WindowWidth: 960, WindowHeight: 720, HalfWidth: 10, HalfHeight: 360, LaneWidth: 16, Speed: Speed{12, 8, 4}}},
		{"fast jumps a footprint", LaneConfig{WindowWidth: 960, WindowHeight: 720, HalfWidth: 480, HalfHeight: 360, LaneWidth: 16, Speed: Speed{32, 8, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestFromDisplay(t *testing.T) {
	d := Display{ScreenWidth: 1920, ScreenHeight: 1080, DDPI: 133, HDPI: 133, VDPI: 139}

	derived := FromDisplay(d, 0)
	assert.Equal(t, 1152, derived.WindowWidth)
	assert.Equal(t, 864, derived.WindowHeight)
	assert.Equal(t, derived.WindowWidth/2, derived.HalfWidth)
	assert.Positive(t, derived.LaneWidth)
	assert.Equal(t, derived.LaneWidth*3/4, derived.Speed.Fast)

	fixed := FromDisplay(d, 16)
	assert.Equal(t, 16, fixed.LaneWidth)
	// Tiers stay tied to the display-derived lane
	assert.Equal(t, derived.Speed, fixed.Speed)
}

func TestFromDisplayFixedLaneValidates(t *testing.T) {
	// 141 dpi diagonal gives tiers above the fixed 16px lane
	cfg := FromDisplay(Display{ScreenWidth: 1920, ScreenHeight: 1080, DDPI: 141, HDPI: 133, VDPI: 139}, 16)
	assert.Equal(t, 16, cfg.LaneWidth)
	assert.Greater(t, cfg.Speed.Fast, cfg.LaneWidth)
	assert.NoError(t, cfg.Validate())
}

func TestFromDisplayMissingDPI(t *testing.T) {
	cfg := FromDisplay(Display{ScreenWidth: 1600, ScreenHeight: 900}, 16)
	assert.Equal(t, 960, cfg.WindowWidth)
	assert.Equal(t, 720, cfg.WindowHeight)
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 16*time.Millisecond, s.Timing.Tick.Duration)
	assert.Equal(t, 128*time.Millisecond, s.Timing.Debounce.Duration)
	assert.Equal(t, NewLaneConfig(960, 720, 16), s.LaneConfig())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
seed = 42

[window]
width = 800
height = 800

[lanes]
width = 20

[timing]
tick = "20ms"
debounce = "100ms"

[audio]
enabled = false

[keys]
random = "x"
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 20*time.Millisecond, s.Timing.Tick.Duration)
	assert.Equal(t, 100*time.Millisecond, s.Timing.Debounce.Duration)
	assert.False(t, s.Audio.Enabled)
	assert.Equal(t, "x", s.Keys.Random)
	// Untouched keys keep their defaults
	assert.Equal(t, "Up", s.Keys.North)

	cfg := s.LaneConfig()
	assert.Equal(t, 800, cfg.WindowWidth)
	assert.Equal(t, 20, cfg.LaneWidth)
	assert.Equal(t, 15, cfg.Speed.Fast)
}

func TestLoadDisplay(t *testing.T) {
	path := writeConfig(t, `
[window.display]
screen_width = 1600
screen_height = 900
`)

	s, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, s.Window.Display)
	assert.Equal(t, 960, s.LaneConfig().WindowWidth)
}

func TestLoadDisplayWithFixedLane(t *testing.T) {
	path := writeConfig(t, `
[window.display]
screen_width = 1920
screen_height = 1080
ddpi = 141.0
hdpi = 133.0
vdpi = 139.0

[lanes]
width = 16
`)

	s, err := Load(path)
	require.NoError(t, err)

	cfg := s.LaneConfig()
	assert.Equal(t, 1152, cfg.WindowWidth)
	assert.Equal(t, 864, cfg.WindowHeight)
	assert.Equal(t, 16, cfg.LaneWidth)
	assert.Equal(t, 17, cfg.Speed.Fast)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[window\nwidth = 1"},
		{"unknown key", "[window]\ndepth = 3"},
		{"bad duration", "[timing]\ntick = \"soon\""},
		{"zero tick", "[timing]\ntick = \"0s\""},
		{"tiny window", "[window]\nwidth = 50\nheight = 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSampleSettingsMatchDefaults(t *testing.T) {
	s, err := Load(filepath.Join("..", "smart-road.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}
