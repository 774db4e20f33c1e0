package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}
}

// DistanceSq is the squared euclidean distance between a and b.
func DistanceSq(a, b cp.Vector) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// LookAt returns the angle in radians of the direction from "from" to "to".
func LookAt(from, to cp.Vector) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Step moves pos toward target by at most dist, never past it.
func Step(pos, target cp.Vector, dist float64) cp.Vector {
	if dist <= 0 {
		return pos
	}
	d := target.Sub(pos)
	l := d.Length()
	if l == 0 {
		return pos
	}
	if l <= dist {
		return target
	}
	return pos.Add(d.Mult(dist / l))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampedOffset is the left (or top) edge of a view of size view centered on
// center, kept inside [0, world]. A world smaller than the view is centered.
func ClampedOffset(center, view, world float64) float64 {
	if world <= view {
		return (world - view) / 2
	}
	return Clamp(center-view/2, 0, world-view)
}

// Axis resolves two opposing inputs to -1, 0 or 1. neg and pos are how long
// each side has been held in ticks (0 when released); the most recent press wins.
func Axis(neg, pos int) float64 {
	switch {
	case neg == 0 && pos == 0:
		return 0
	case neg == 0:
		return 1
	case pos == 0:
		return -1
	case pos <= neg:
		return 1
	default:
		return -1
	}
}
