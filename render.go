package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/ai"
	"github.com/milk9111/triggered/entity"
	"github.com/milk9111/triggered/grid"
	"github.com/milk9111/triggered/prefabs"
	"github.com/milk9111/triggered/sim"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight   = 16
	minimapScale = 0.08
	healthBarW   = 200
	healthBarH   = 14
)

var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	panelColor      = color.NRGBA{A: 200}
)

// Renderer draws a sim.Level in view space.
type Renderer struct {
	face  ebtext.Face
	specs prefabs.Specs
}

func NewRenderer(specs prefabs.Specs) *Renderer {
	return &Renderer{face: ebtext.NewGoXFace(basicfont.Face7x13), specs: specs}
}

func (r *Renderer) SetSpecs(specs prefabs.Specs) {
	r.specs = specs
}

func (r *Renderer) text(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight
	ebtext.Draw(screen, s, r.face, op)
}

func (r *Renderer) centeredText(screen *ebiten.Image, s string, y float64, clr color.Color) {
	w, _ := ebtext.Measure(s, r.face, lineHeight)
	r.text(screen, s, (float64(screen.Bounds().Dx())-w)/2, y, clr)
}

// DrawLevel draws the map and every agent of lvl.
func (r *Renderer) DrawLevel(screen *ebiten.Image, lvl *sim.Level, camera *Camera, debug bool) {
	screen.Fill(backgroundColor)

	g := lvl.Grid()
	r.drawTiles(screen, g, grid.Floor, colornames.Darkslategray, camera)
	r.drawTiles(screen, g, grid.Wall, colornames.Dimgray, camera)

	if debug {
		for _, e := range lvl.Enemies() {
			r.drawPatrol(screen, e.Controller(), camera)
		}
	}

	for _, b := range lvl.Bullets() {
		x, y := camera.WorldToScreen(b.Position())
		clr := r.specs.Bullet.Color.Or(colornames.Gold)
		vector.FillCircle(screen, x, y, float32(b.Radius()), clr, true)
	}

	for _, e := range lvl.Enemies() {
		r.drawAgent(screen, e, r.specs.Enemy.Color.Or(colornames.Crimson), camera)
		if debug {
			r.drawEnemyDebug(screen, e, camera)
		}
	}

	if p := lvl.Player(); !p.Dead() {
		r.drawAgent(screen, p, r.specs.Player.Color.Or(colornames.Dodgerblue), camera)
	}

	if debug {
		drawPhysics(screen, lvl.World(), camera)
	}
}

func (r *Renderer) drawTiles(screen *ebiten.Image, g *grid.Grid, tag grid.Tag, clr color.Color, camera *Camera) {
	for _, rect := range g.Rects(tag) {
		bb := g.RectBB(rect)
		x, y := camera.WorldToScreen(cp.Vector{X: bb.L, Y: bb.B})
		vector.FillRect(screen, x, y, float32(bb.R-bb.L), float32(bb.T-bb.B), clr, false)
	}
}

func (r *Renderer) drawAgent(screen *ebiten.Image, a entity.Agent, clr color.Color, camera *Camera) {
	pos := a.Position()
	x, y := camera.WorldToScreen(pos)
	radius := float32(a.Radius())
	vector.FillCircle(screen, x, y, radius, clr, true)

	nose := pos.Add(cp.ForAngle(a.Angle()).Mult(a.Radius() * 1.4))
	nx, ny := camera.WorldToScreen(nose)
	vector.StrokeLine(screen, x, y, nx, ny, 4, clr, true)

	if f := a.HealthFraction(); f < 1 {
		w := radius * 2
		vector.FillRect(screen, x-radius, y-radius-10, w, 4, colornames.Darkred, false)
		vector.FillRect(screen, x-radius, y-radius-10, w*float32(f), 4, colornames.Limegreen, false)
	}
}

func (r *Renderer) drawPatrol(screen *ebiten.Image, c *ai.Controller, camera *Camera) {
	wps := c.Waypoints()
	for i := range wps {
		ax, ay := camera.WorldToScreen(wps[i])
		bx, by := camera.WorldToScreen(wps[(i+1)%len(wps)])
		vector.StrokeLine(screen, ax, ay, bx, by, 1, colornames.Slateblue, false)
		vector.FillCircle(screen, ax, ay, 3, colornames.Slateblue, false)
	}
	ret := c.ReturnPath()
	for i := 1; i < len(ret); i++ {
		ax, ay := camera.WorldToScreen(ret[i-1])
		bx, by := camera.WorldToScreen(ret[i])
		vector.StrokeLine(screen, ax, ay, bx, by, 2, colornames.Orange, false)
	}
}

func (r *Renderer) drawEnemyDebug(screen *ebiten.Image, e *entity.Enemy, camera *Camera) {
	cfg := e.Controller().Config()
	x, y := camera.WorldToScreen(e.Position())
	vector.StrokeCircle(screen, x, y, float32(cfg.ChaseRadius), 1, colornames.Yellow, true)
	vector.StrokeCircle(screen, x, y, float32(cfg.AttackRadius), 1, colornames.Orangered, true)
	r.text(screen, fmt.Sprintf("%d %s", e.ID, e.State()), float64(x)+float64(e.Radius()), float64(y)-float64(e.Radius()), colornames.White)
}

// DrawHUD draws the health bar, ammo and level name in screen space.
func (r *Renderer) DrawHUD(screen *ebiten.Image, lvl *sim.Level) {
	p := lvl.Player()
	vector.FillRect(screen, 10, 10, healthBarW, healthBarH, colornames.Darkred, false)
	vector.FillRect(screen, 10, 10, float32(healthBarW*p.HealthFraction()), healthBarH, colornames.Limegreen, false)
	vector.StrokeRect(screen, 10, 10, healthBarW, healthBarH, 1, colornames.White, false)

	r.text(screen, fmt.Sprintf("Ammo: %d", p.Ammo()), 10, 30, colornames.White)
	r.text(screen, fmt.Sprintf("%s  enemies %d/%d", lvl.Name, len(lvl.Enemies()), lvl.EnemiesTotal()), 10, 30+lineHeight, colornames.Lightgray)
}

// DrawInfo draws the objectives panel and a minimap.
func (r *Renderer) DrawInfo(screen *ebiten.Image, lvl *sim.Level) {
	g := lvl.Grid()
	ww, wh := g.Size()
	mw, mh := float32(ww*minimapScale), float32(wh*minimapScale)

	objectives := lvl.Objectives()
	panelW := float32(320)
	if mw+20 > panelW {
		panelW = mw + 20
	}
	panelH := float32(40+lineHeight*len(objectives)) + mh + 20
	sw := float32(screen.Bounds().Dx())
	px, py := sw-panelW-10, float32(10)
	vector.FillRect(screen, px, py, panelW, panelH, panelColor, false)

	r.text(screen, fmt.Sprintf("%s  %.1fs", lvl.Name, lvl.Elapsed()), float64(px+10), float64(py+8), colornames.White)
	for i, o := range objectives {
		mark, clr := "[ ]", colornames.Lightgray
		if o.Done {
			mark, clr = "[x]", colornames.Limegreen
		}
		r.text(screen, mark+" "+o.Text, float64(px+10), float64(py+28)+float64(i*lineHeight), clr)
	}

	mx := px + 10
	my := py + float32(40+lineHeight*len(objectives))
	for _, rect := range g.Rects(grid.Wall) {
		bb := g.RectBB(rect)
		vector.FillRect(screen, mx+float32(bb.L*minimapScale), my+float32(bb.B*minimapScale),
			float32((bb.R-bb.L)*minimapScale), float32((bb.T-bb.B)*minimapScale), colornames.Gray, false)
	}
	dot := func(p cp.Vector, clr color.Color) {
		vector.FillCircle(screen, mx+float32(p.X*minimapScale), my+float32(p.Y*minimapScale), 2.5, clr, false)
	}
	for _, e := range lvl.Enemies() {
		dot(e.Position(), r.specs.Enemy.Color.Or(colornames.Crimson))
	}
	if p := lvl.Player(); !p.Dead() {
		dot(p.Position(), r.specs.Player.Color.Or(colornames.Dodgerblue))
	}
}

// DrawBanner dims the screen and shows centered lines of text.
func (r *Renderer) DrawBanner(screen *ebiten.Image, lines ...string) {
	b := screen.Bounds()
	vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{A: 160}, false)
	y := float64(b.Dy())/2 - float64(len(lines)*lineHeight)/2
	for i, l := range lines {
		clr := colornames.Lightgray
		if i == 0 {
			clr = colornames.White
		}
		r.centeredText(screen, l, y+float64(i*lineHeight), clr)
	}
}

// DrawCrosshair marks the aim point.
func (r *Renderer) DrawCrosshair(screen *ebiten.Image, aim cp.Vector, camera *Camera) {
	x, y := camera.WorldToScreen(aim)
	vector.StrokeCircle(screen, x, y, 6, 1.5, colornames.White, true)
	vector.StrokeLine(screen, x-10, y, x-4, y, 1.5, colornames.White, true)
	vector.StrokeLine(screen, x+4, y, x+10, y, 1.5, colornames.White, true)
	vector.StrokeLine(screen, x, y-10, x, y-4, 1.5, colornames.White, true)
	vector.StrokeLine(screen, x, y+4, x, y+10, 1.5, colornames.White, true)
}
