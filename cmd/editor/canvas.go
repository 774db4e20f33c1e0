package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/levels"
	"golang.org/x/image/colornames"
)

var tileColors = map[byte]color.Color{
	levels.TileWall:  colornames.Dimgray,
	levels.TileFloor: colornames.Darkslategray,
}

func (e *Editor) toScreen(p cp.Vector) (float32, float32) {
	return float32(p.X - e.camX + panelWidth), float32(p.Y - e.camY)
}

func (e *Editor) drawCanvas(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 18, 24, 255})

	lvl := e.session.lvl
	ns := lvl.NodeSize
	if ns <= 0 {
		ns = levels.DefaultNodeSize
	}
	size := float32(ns)

	for row := 0; row < lvl.Height(); row++ {
		for col := 0; col < lvl.Width(); col++ {
			x, y := e.toScreen(cp.Vector{X: float64(col) * ns, Y: float64(row) * ns})
			if c, ok := tileColors[lvl.Tile(col, row)]; ok {
				vector.FillRect(screen, x, y, size, size, c, false)
			}
			vector.StrokeRect(screen, x, y, size, size, 1, color.RGBA{60, 60, 70, 255}, false)
		}
	}

	radius := float32(ns * 0.225)
	for i := range lvl.Enemies {
		route := lvl.PatrolRoute(i)
		for j := 1; j < len(route); j++ {
			ax, ay := e.toScreen(route[j-1])
			bx, by := e.toScreen(route[j])
			vector.StrokeLine(screen, ax, ay, bx, by, 1, colornames.Slateblue, false)
		}
		if i < len(lvl.Waypoints) {
			for j, wp := range lvl.Waypoints[i] {
				x, y := e.toScreen(wp.Vector())
				vector.FillCircle(screen, x, y, 4, colornames.Slateblue, false)
				ebitenutil.DebugPrintAt(screen, fmt.Sprint(j+1), int(x)+5, int(y)-14)
			}
		}
	}

	for i, en := range lvl.Enemies {
		x, y := e.toScreen(en.Vector())
		vector.FillCircle(screen, x, y, radius, colornames.Crimson, true)
		if i == e.session.selected {
			vector.StrokeCircle(screen, x, y, radius+4, 2, colornames.Yellow, true)
		}
	}

	px, py := e.toScreen(lvl.Player.Vector())
	vector.FillCircle(screen, px, py, radius, colornames.Dodgerblue, true)

	if p, ok := e.cursorWorld(); ok {
		if col, row, ok := lvl.CellAt(p); ok {
			x, y := e.toScreen(cp.Vector{X: float64(col) * ns, Y: float64(row) * ns})
			vector.StrokeRect(screen, x, y, size, size, 2, colornames.White, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  cell %d,%d", e.tool, col, row), panelWidth+10, e.screenH-20)
		}
	}
}
