// Package render draws the simulation on a tcell screen
// Canvas pixels are scaled onto the terminal grid; the last row is the status bar
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/smart-road/config"
	"github.com/lixenwraith/smart-road/engine"
)

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	cfg    config.LaneConfig
}

// NewTerminalRenderer creates a new terminal renderer for a lane geometry
func NewTerminalRenderer(screen tcell.Screen, cfg config.LaneConfig) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		cfg:    cfg,
	}
}

// viewport maps canvas pixels to cells for the current screen size
type viewport struct {
	cols, rows int
	sx, sy     float64
}

func (r *TerminalRenderer) viewport() viewport {
	w, h := r.screen.Size()
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	return viewport{
		cols: w,
		rows: rows,
		sx:   float64(w) / float64(r.cfg.WindowWidth),
		sy:   float64(rows) / float64(r.cfg.WindowHeight),
	}
}

func (v viewport) cell(px, py int) (int, int) {
	return int(float64(px) * v.sx), int(float64(py) * v.sy)
}

// pixel returns the canvas point at the center of a cell
func (v viewport) pixel(cx, cy int) (int, int) {
	return int((float64(cx) + 0.5) / v.sx), int((float64(cy) + 0.5) / v.sy)
}

// RenderFrame renders the whole scene for one tick
func (r *TerminalRenderer) RenderFrame(f engine.Frame) {
	r.screen.Clear()
	vp := r.viewport()

	r.drawRoad(vp)
	r.drawLaneMarks(vp)
	r.drawVehicles(vp, f)
	r.drawStatusBar(vp, f)

	r.screen.Show()
}

// drawRoad paints asphalt over both six-lane bands and grass elsewhere
func (r *TerminalRenderer) drawRoad(vp viewport) {
	boxX, boxY, side := r.cfg.CentralBox()
	grass := tcell.StyleDefault.Background(RgbGrass)
	road := tcell.StyleDefault.Background(RgbAsphalt)

	for cy := 0; cy < vp.rows; cy++ {
		for cx := 0; cx < vp.cols; cx++ {
			px, py := vp.pixel(cx, cy)
			onRoad := (px >= boxX && px < boxX+side) || (py >= boxY && py < boxY+side)
			if onRoad {
				r.screen.SetContent(cx, cy, ' ', nil, road)
			} else {
				r.screen.SetContent(cx, cy, ' ', nil, grass)
			}
		}
	}
}

// drawLaneMarks draws the center lines outside the box and the give-way
// lines along its edges
func (r *TerminalRenderer) drawLaneMarks(vp viewport) {
	boxX, boxY, side := r.cfg.CentralBox()
	mark := tcell.StyleDefault.Background(RgbAsphalt).Foreground(RgbLaneMark)
	stop := tcell.StyleDefault.Background(RgbAsphalt).Foreground(RgbGiveWay)

	centerCol, centerRow := vp.cell(r.cfg.HalfWidth, r.cfg.HalfHeight)
	boxLeft, boxTop := vp.cell(boxX, boxY)
	boxRight, boxBottom := vp.cell(boxX+side, boxY+side)

	for cy := 0; cy < vp.rows; cy++ {
		if cy < boxTop || cy >= boxBottom {
			r.screen.SetContent(centerCol, cy, '┊', nil, mark)
		}
	}
	for cx := 0; cx < vp.cols; cx++ {
		if cx < boxLeft || cx >= boxRight {
			r.screen.SetContent(cx, centerRow, '┄', nil, mark)
		}
	}

	// Give-way lines on the inbound half of each approach
	for cx := boxLeft; cx < centerCol; cx++ {
		r.setInView(vp, cx, boxTop-1, '─', stop)
	}
	for cx := centerCol + 1; cx < boxRight; cx++ {
		r.setInView(vp, cx, boxBottom, '─', stop)
	}
	for cy := centerRow + 1; cy < boxBottom; cy++ {
		r.setInView(vp, boxLeft-1, cy, '│', stop)
	}
	for cy := boxTop; cy < centerRow; cy++ {
		r.setInView(vp, boxRight, cy, '│', stop)
	}
}

func (r *TerminalRenderer) setInView(vp viewport, cx, cy int, ch rune, style tcell.Style) {
	if cx < 0 || cy < 0 || cx >= vp.cols || cy >= vp.rows {
		return
	}
	r.screen.SetContent(cx, cy, ch, nil, style)
}

// drawVehicles places one heading glyph at each footprint's center
// Vehicles already partly off the canvas are not drawn
func (r *TerminalRenderer) drawVehicles(vp viewport, f engine.Frame) {
	lw := r.cfg.LaneWidth
	for _, v := range f.Vehicles {
		if v.X < 0 || v.X+lw > r.cfg.WindowWidth || v.Y < 0 || v.Y+lw > r.cfg.WindowHeight {
			continue
		}
		cx, cy := vp.cell(v.X+lw/2, v.Y+lw/2)
		style := tcell.StyleDefault.Background(RgbAsphalt).Foreground(CarColor(v.Color)).Bold(true)
		r.setInView(vp, cx, cy, HeadingGlyph(v.Heading()), style)
	}
}

// drawStatusBar writes live counters on the last row
func (r *TerminalRenderer) drawStatusBar(vp viewport, f engine.Frame) {
	style := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText)
	text := fmt.Sprintf(" passed %d  give-ways %d  live %d  pending %d  tick %d ",
		f.Stats.Passed, f.Stats.GiveWays, len(f.Vehicles), f.Pending, f.Tick)

	row := vp.rows
	for x := 0; x < vp.cols; x++ {
		r.screen.SetContent(x, row, ' ', nil, style)
	}
	r.drawText(0, row, text, style)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// RenderReport draws the final statistics centered on a blank screen
func (r *TerminalRenderer) RenderReport(report string) {
	r.screen.Clear()
	w, h := r.screen.Size()
	style := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbLaneMark)
	title := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText).Bold(true)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	lines := append([]string{"Smart Road", ""}, strings.Split(report, "\n")...)
	lines = append(lines, "", "press any key to exit")

	top := (h - len(lines)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range lines {
		x := (w - len([]rune(line))) / 2
		if x < 0 {
			x = 0
		}
		s := style
		if i == 0 {
			s = title
		}
		r.drawText(x, top+i, line, s)
	}

	r.screen.Show()
}
