package traffic

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is one car: a lane-width square moving at constant speed
type Vehicle struct {
	ID uuid.UUID

	// Top-left corner of the footprint in canvas pixels
	X, Y int

	Entry Approach
	Exit  Approach
	Lane  Lane

	// Pixels per tick
	Speed int

	// Primary travel axis; flips once at the turn waypoint for turning vehicles
	Vertical bool

	Color   Color
	Retired bool

	// Position in the owning collection, reassigned after every compaction
	Index int

	SpawnedAt time.Time
}

// Turning reports whether the path changes axis
func (v Vehicle) Turning() bool {
	return v.Entry != v.Exit
}

// Turned reports whether a turning vehicle has passed its waypoint
func (v Vehicle) Turned() bool {
	return v.Vertical != v.Entry.Vertical()
}

// Heading returns the direction the vehicle currently travels
func (v Vehicle) Heading() Approach {
	if v.Turned() {
		return v.Exit
	}
	return v.Entry
}

// Rect is an axis-aligned square footprint
type Rect struct {
	X, Y, Size int
}

// Footprint returns the square occupied at the current position
func (v Vehicle) Footprint(laneWidth int) Rect {
	return Rect{X: v.X, Y: v.Y, Size: laneWidth}
}

// Overlaps is the half-open AABB test for two w-sided squares
// Touching edges do not overlap
func Overlaps(x1, y1, x2, y2, w int) bool {
	return x1 < x2+w && x1+w > x2 && y1 < y2+w && y1+w > y2
}
