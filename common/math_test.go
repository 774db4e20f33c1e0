package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   cp.Vector
		want cp.Vector
	}{
		{"zero", cp.Vector{}, cp.Vector{}},
		{"axis", cp.Vector{X: 5}, cp.Vector{X: 1}},
		{"diagonal", cp.Vector{X: 3, Y: 4}, cp.Vector{X: 0.6, Y: 0.8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Normalize(c.in)
			assert.InDelta(t, c.want.X, got.X, 1e-9)
			assert.InDelta(t, c.want.Y, got.Y, 1e-9)
		})
	}
}

func TestStepDoesNotOvershoot(t *testing.T) {
	pos := cp.Vector{X: 0, Y: 0}
	target := cp.Vector{X: 3, Y: 0}

	assert.Equal(t, cp.Vector{X: 2, Y: 0}, Step(pos, target, 2))
	assert.Equal(t, target, Step(pos, target, 10))
	assert.Equal(t, pos, Step(pos, pos, 10))
	assert.Equal(t, pos, Step(pos, target, 0))
}

func TestLookAtAndDistance(t *testing.T) {
	assert.InDelta(t, math.Pi/2, LookAt(cp.Vector{}, cp.Vector{Y: 10}), 1e-9)
	assert.Equal(t, 25.0, DistanceSq(cp.Vector{}, cp.Vector{X: 3, Y: 4}))
	assert.Equal(t, 1.0, Clamp(5, 0, 1))
	assert.Equal(t, 0.5, Lerp(0, 1, 0.5))
}

func TestClampedOffset(t *testing.T) {
	cases := []struct {
		name                string
		center, view, world float64
		want                float64
	}{
		{"middle", 800, 400, 1600, 600},
		{"left edge", 100, 400, 1600, 0},
		{"right edge", 1550, 400, 1600, 1200},
		{"small world", 50, 400, 200, -100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ClampedOffset(c.center, c.view, c.world))
		})
	}
}

func TestAxisLastPressedWins(t *testing.T) {
	assert.Equal(t, 0.0, Axis(0, 0))
	assert.Equal(t, -1.0, Axis(3, 0))
	assert.Equal(t, 1.0, Axis(0, 1))
	assert.Equal(t, 1.0, Axis(10, 2))
	assert.Equal(t, -1.0, Axis(2, 10))
}
