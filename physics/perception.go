package physics

import "github.com/jakecoffman/cp"

// SightRadius is the thickness of line of sight queries.
const SightRadius = 1.0

// SightFilter only matches walls. Agents standing on either end of the
// segment must not hide each other.
var SightFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, CategoryWall)

// Raycast returns the first shape hit by a thick segment from a to b.
func (w *World) Raycast(a, b cp.Vector, radius float64, filter cp.ShapeFilter) (cp.SegmentQueryInfo, bool) {
	info := w.space.SegmentQueryFirst(a, b, radius, filter)
	return info, info.Shape != nil
}

// LineOfSight reports whether nothing blocks the segment from a to b.
func (w *World) LineOfSight(a, b cp.Vector) bool {
	_, hit := w.Raycast(a, b, SightRadius, SightFilter)
	return !hit
}
