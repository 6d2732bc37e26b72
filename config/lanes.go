package config

import (
	"fmt"
	"math"
)

// Speed holds the three per-tick speed tiers in pixels
type Speed struct {
	Fast    int
	Default int
	Slow    int
}

// LaneConfig is the process-wide intersection geometry
// All vehicle positions and turn thresholds are derived from it
type LaneConfig struct {
	WindowWidth  int
	WindowHeight int
	HalfWidth    int
	HalfHeight   int
	LaneWidth    int
	Speed        Speed
}

// Display describes the host screen used to derive a LaneConfig
type Display struct {
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`
	// Diagonal, horizontal and vertical DPI as reported by the display
	DDPI float64 `toml:"ddpi"`
	HDPI float64 `toml:"hdpi"`
	VDPI float64 `toml:"vdpi"`
}

// Reference densities the window scaling was tuned against
const (
	referenceHDPI    = 133.0
	referenceVDPI    = 139.0
	referenceDiagDPI = 1024.3201 * 134.4
	laneScale        = 16.0

	// roadLanes is the number of lane-width columns the road occupies
	roadLanes = 6
)

// NewLaneConfig builds geometry for a fixed window and lane width
// Speed tiers are fractions of the lane width
func NewLaneConfig(width, height, laneWidth int) LaneConfig {
	return LaneConfig{
		WindowWidth:  width,
		WindowHeight: height,
		HalfWidth:    width / 2,
		HalfHeight:   height / 2,
		LaneWidth:    laneWidth,
		Speed:        speedTiers(laneWidth),
	}
}

func speedTiers(laneWidth int) Speed {
	return Speed{
		Fast:    laneWidth * 3 / 4,
		Default: laneWidth / 2,
		Slow:    laneWidth / 4,
	}
}

// FromDisplay derives window size and lane width from screen geometry
// Window takes 60% of screen width and 80% of screen height, scaled by DPI
// A non-zero fixedLaneWidth overrides the DPI lane width for footprints while
// speed tiers stay DPI-derived
func FromDisplay(d Display, fixedLaneWidth int) LaneConfig {
	hdpi, vdpi, ddpi := d.HDPI, d.VDPI, d.DDPI
	if hdpi <= 0 {
		hdpi = referenceHDPI
	}
	if vdpi <= 0 {
		vdpi = referenceVDPI
	}
	if ddpi <= 0 {
		ddpi = math.Sqrt(hdpi*hdpi+vdpi*vdpi) / math.Sqrt2
	}

	w := float64(d.ScreenWidth) * 0.6 * hdpi / referenceHDPI
	h := float64(d.ScreenHeight) * 0.8 * vdpi / referenceVDPI
	inches := math.Sqrt(w*w + h*h)

	dpiLane := int(laneScale * inches * ddpi / referenceDiagDPI)
	lane := dpiLane
	if fixedLaneWidth > 0 {
		lane = fixedLaneWidth
	}

	cfg := NewLaneConfig(int(w), int(h), lane)
	cfg.Speed = speedTiers(dpiLane)
	return cfg
}

// Validate checks the window holds the road and every speed tier moves
func (c LaneConfig) Validate() error {
	if c.LaneWidth <= 0 {
		return fmt.Errorf("lane width must be positive, got %d", c.LaneWidth)
	}
	// Spawn slots sit on the edges, the central box spans roadLanes lanes
	minSide := (roadLanes + 2) * c.LaneWidth
	if c.WindowWidth < minSide || c.WindowHeight < minSide {
		return fmt.Errorf("window %dx%d too small for lane width %d (need %d per side)",
			c.WindowWidth, c.WindowHeight, c.LaneWidth, minSide)
	}
	if c.HalfWidth != c.WindowWidth/2 || c.HalfHeight != c.WindowHeight/2 {
		return fmt.Errorf("half sizes %dx%d do not match window %dx%d",
			c.HalfWidth, c.HalfHeight, c.WindowWidth, c.WindowHeight)
	}
	if c.Speed.Slow <= 0 || c.Speed.Default <= 0 || c.Speed.Fast <= 0 {
		return fmt.Errorf("speed tiers must be positive, got %+v", c.Speed)
	}
	// Footprints are one lane wide, so only a step of two lanes or more can
	// jump clear over another vehicle
	if c.Speed.Fast >= 2*c.LaneWidth {
		return fmt.Errorf("fast speed %d must be under twice the lane width %d", c.Speed.Fast, c.LaneWidth)
	}
	return nil
}

// CentralBox returns the top-left corner and side of the intersection box
func (c LaneConfig) CentralBox() (x, y, side int) {
	return c.HalfWidth - 3*c.LaneWidth, c.HalfHeight - 3*c.LaneWidth, roadLanes * c.LaneWidth
}
