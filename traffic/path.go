package traffic

import (
	"fmt"

	"github.com/lixenwraith/smart-road/config"
)

// waypoint returns the primary-axis coordinate where a turning vehicle
// switches axis; it is also the cross coordinate of the destination lane
func waypoint(entry, exit Approach, cfg config.LaneConfig) int {
	lw, hw, hh := cfg.LaneWidth, cfg.HalfWidth, cfg.HalfHeight

	switch {
	case entry == North && exit == West:
		return hh - lw
	case entry == North && exit == East:
		return hh + 2*lw
	case entry == South && exit == West:
		return hh - 3*lw
	case entry == South && exit == East:
		return hh
	case entry == West && exit == North:
		return hw + 2*lw
	case entry == West && exit == South:
		return hw - lw
	case entry == East && exit == North:
		return hw
	case entry == East && exit == South:
		return hw - 3*lw
	}
	panic(fmt.Sprintf("invalid turn %s->%s", entry, exit))
}

// step moves a coordinate one tick along a direction
func step(x, y, speed int, dir Approach) (int, int) {
	switch dir {
	case North:
		return x, y - speed
	case South:
		return x, y + speed
	case East:
		return x + speed, y
	case West:
		return x - speed, y
	}
	panic(fmt.Sprintf("invalid direction %d", int(dir)))
}

// nextPosition computes the prospective position and axis for one tick
// Before the waypoint the vehicle steps along its entry axis; once the
// primary coordinate has reached the waypoint it snaps onto the destination
// lane and steps along the exit axis
func nextPosition(v Vehicle, cfg config.LaneConfig) (x, y int, vertical bool) {
	if !v.Entry.Valid() || !v.Exit.Valid() {
		panic(fmt.Sprintf("invalid route %s->%s", v.Entry, v.Exit))
	}

	if !v.Turning() {
		x, y = step(v.X, v.Y, v.Speed, v.Entry)
		return x, y, v.Vertical
	}

	wp := waypoint(v.Entry, v.Exit, cfg)

	var before bool
	switch v.Entry {
	case North:
		before = v.Y > wp
	case South:
		before = v.Y < wp
	case West:
		before = v.X > wp
	case East:
		before = v.X < wp
	}

	if before {
		x, y = step(v.X, v.Y, v.Speed, v.Entry)
		return x, y, v.Vertical
	}

	x, y = v.X, v.Y
	if v.Entry.Vertical() {
		y = wp
	} else {
		x = wp
	}
	x, y = step(x, y, v.Speed, v.Exit)
	return x, y, v.Exit.Vertical()
}

// outside reports whether the footprint lies fully or partly off the canvas
func outside(v Vehicle, cfg config.LaneConfig) bool {
	return v.X < 0 ||
		v.X+cfg.LaneWidth > cfg.WindowWidth ||
		v.Y < 0 ||
		v.Y+cfg.LaneWidth > cfg.WindowHeight
}
