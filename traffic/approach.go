package traffic

import "fmt"

// Approach is a screen-relative travel direction
// It names both the side a vehicle enters from and the side it leaves by
type Approach int

const (
	North Approach = iota // up the screen
	South                 // down the screen
	East                  // to the right
	West                  // to the left
)

// Approaches lists every approach in color-class order
var Approaches = [...]Approach{North, South, East, West}

func (a Approach) String() string {
	switch a {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("approach(%d)", int(a))
}

// Vertical reports whether travel in this direction is along the y axis
func (a Approach) Vertical() bool {
	return a == North || a == South
}

// Valid reports whether a is one of the four approaches
func (a Approach) Valid() bool {
	return a >= North && a <= West
}

// Lane indexes one of the three entry lanes of an approach
// LaneStraight always goes through; LaneLeft leaves by the west or north
// edge and LaneRight by the east or south edge
type Lane int

const (
	LaneLeft Lane = iota
	LaneStraight
	LaneRight
)

// LaneCount is the number of entry lanes per approach
const LaneCount = 3

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneStraight:
		return "straight"
	case LaneRight:
		return "right"
	}
	return fmt.Sprintf("lane(%d)", int(l))
}

// Color is the rendering class of a vehicle, derived from its entry
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
)

func colorOf(entry Approach) Color {
	return Color(entry)
}
