package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/common"
)

// Camera keeps a screen sized view over the world, clamped to the map.
type Camera struct {
	// X and Y are the world-space top-left of the view.
	X, Y float64

	screenW float64
	screenH float64
}

func NewCamera(screenW, screenH int) *Camera {
	return &Camera{screenW: float64(screenW), screenH: float64(screenH)}
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = float64(w)
	c.screenH = float64(h)
}

// Follow centers the view on target without showing past the world edges.
func (c *Camera) Follow(target cp.Vector, worldW, worldH float64) {
	c.X = common.ClampedOffset(target.X, c.screenW, worldW)
	c.Y = common.ClampedOffset(target.Y, c.screenH, worldH)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.X, c.Y
}

func (c *Camera) ScreenToWorld(x, y float64) cp.Vector {
	return cp.Vector{X: x + c.X, Y: y + c.Y}
}

func (c *Camera) WorldToScreen(p cp.Vector) (float32, float32) {
	return float32(p.X - c.X), float32(p.Y - c.Y)
}
