package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/smart-road/traffic"
)

// RGB color definitions for the intersection scene
var (
	RgbGrass      = tcell.NewRGBColor(28, 48, 30)    // Dark verge
	RgbAsphalt    = tcell.NewRGBColor(64, 64, 64)    // Road surface
	RgbLaneMark   = tcell.NewRGBColor(230, 230, 230) // Lane and center lines
	RgbGiveWay    = tcell.NewRGBColor(255, 255, 255) // Stop lines at the box edge
	RgbStatusBar  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatusText = tcell.NewRGBColor(135, 206, 250) // Light sky blue

	RgbCarRed    = tcell.NewRGBColor(255, 0, 0)
	RgbCarGreen  = tcell.NewRGBColor(0, 255, 0)
	RgbCarBlue   = tcell.NewRGBColor(0, 0, 255)
	RgbCarYellow = tcell.NewRGBColor(255, 255, 0)
)

// CarColor returns the body color for a vehicle color class
func CarColor(c traffic.Color) tcell.Color {
	switch c {
	case traffic.ColorGreen:
		return RgbCarGreen
	case traffic.ColorBlue:
		return RgbCarBlue
	case traffic.ColorYellow:
		return RgbCarYellow
	}
	return RgbCarRed
}

// HeadingGlyph returns the arrow drawn for a travel direction
func HeadingGlyph(a traffic.Approach) rune {
	switch a {
	case traffic.South:
		return '▼'
	case traffic.East:
		return '▶'
	case traffic.West:
		return '◀'
	}
	return '▲'
}
