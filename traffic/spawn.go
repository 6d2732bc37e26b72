package traffic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/smart-road/config"
)

type speedTier int

const (
	tierSlow speedTier = iota
	tierDefault
	tierFast
)

func (t speedTier) pixels(s config.Speed) int {
	switch t {
	case tierSlow:
		return s.Slow
	case tierFast:
		return s.Fast
	}
	return s.Default
}

type route struct {
	exit Approach
	tier speedTier
}

// routes is the fixed spawn contract, indexed by entry then lane
// The slow/default swap between north-south and east-west entries is intended
var routes = [4][LaneCount]route{
	North: {{West, tierDefault}, {North, tierFast}, {East, tierSlow}},
	South: {{West, tierSlow}, {South, tierFast}, {East, tierDefault}},
	East:  {{North, tierDefault}, {East, tierFast}, {South, tierSlow}},
	West:  {{North, tierSlow}, {West, tierFast}, {South, tierDefault}},
}

// spawnPoint places the footprint flush with the entry edge, already in the
// column or row aligned with its exit lane
func spawnPoint(entry Approach, lane Lane, cfg config.LaneConfig) (x, y int) {
	lw, hw, hh := cfg.LaneWidth, cfg.HalfWidth, cfg.HalfHeight
	n := int(lane)

	switch entry {
	case North:
		return hw + n*lw, cfg.WindowHeight - lw
	case South:
		return hw - (3-n)*lw, 0
	case East:
		return 0, hh + n*lw
	case West:
		return cfg.WindowWidth - lw, hh - (3-n)*lw
	}
	panic(fmt.Sprintf("invalid entry approach %d", int(entry)))
}

func newVehicle(entry Approach, lane Lane, index int, cfg config.LaneConfig, now time.Time) Vehicle {
	if !entry.Valid() || lane < LaneLeft || lane > LaneRight {
		panic(fmt.Sprintf("invalid spawn %s/%s", entry, lane))
	}
	r := routes[entry][lane]
	x, y := spawnPoint(entry, lane, cfg)

	return Vehicle{
		ID:        uuid.New(),
		X:         x,
		Y:         y,
		Entry:     entry,
		Exit:      r.exit,
		Lane:      lane,
		Speed:     r.tier.pixels(cfg.Speed),
		Vertical:  entry.Vertical(),
		Color:     colorOf(entry),
		Index:     index,
		SpawnedAt: now,
	}
}
