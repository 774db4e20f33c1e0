// Package physics wraps a chipmunk space holding the level walls, agents and bullets.
package physics

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/grid"
)

const (
	CollisionPlayer cp.CollisionType = iota + 1
	CollisionWall
	CollisionPlayerBullet
	CollisionEnemyBullet
	CollisionEnemy
)

// Shape categories. Only CategoryWall blocks sight.
const (
	CategoryWall uint = 1 << iota
	CategoryAgent
	CategoryBullet
)

const defaultIterations = 10

type World struct {
	space *cp.Space
	grid  *grid.Grid
	walls int
}

// New builds a world with one static box per merged run of wall cells plus
// segments along the grid bounds.
func New(g *grid.Grid, iterations int) *World {
	space := cp.NewSpace()
	if iterations <= 0 {
		iterations = defaultIterations
	}
	space.Iterations = uint(iterations)
	space.SetGravity(cp.Vector{})

	w := &World{space: space, grid: g}
	w.buildWalls()
	log.Printf("PhysicsWorld: %d wall shapes for %dx%d grid", w.walls, g.Width(), g.Height())
	return w
}

func (w *World) buildWalls() {
	filter := cp.NewShapeFilter(cp.NO_GROUP, CategoryWall, cp.ALL_CATEGORIES)
	for _, r := range w.grid.Rects(grid.Wall) {
		shape := cp.NewBox2(w.space.StaticBody, w.grid.RectBB(r), 0)
		w.addWallShape(shape, filter)
	}

	bb := w.grid.Bounds()
	segments := [][2]cp.Vector{
		{{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}},
		{{X: bb.L, Y: bb.T}, {X: bb.R, Y: bb.T}},
		{{X: bb.L, Y: bb.B}, {X: bb.L, Y: bb.T}},
		{{X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}},
	}
	for _, seg := range segments {
		w.addWallShape(cp.NewSegment(w.space.StaticBody, seg[0], seg[1], 1), filter)
	}
}

func (w *World) addWallShape(shape *cp.Shape, filter cp.ShapeFilter) {
	shape.SetFriction(0)
	shape.SetCollisionType(CollisionWall)
	shape.SetFilter(filter)
	w.space.AddShape(shape)
	w.walls++
}

func (w *World) Space() *cp.Space {
	return w.space
}

func (w *World) Grid() *grid.Grid {
	return w.grid
}

// AddAgent adds a dynamic circle that never rotates from contacts. owner is
// stored on the shape and the body and handed back by collision callbacks.
func (w *World) AddAgent(pos cp.Vector, radius float64, ct cp.CollisionType, owner interface{}) (*cp.Body, *cp.Shape) {
	return w.addCircle(pos, radius, ct, CategoryAgent, false, owner)
}

// AddBullet adds a sensor circle. Sensors report contacts without a physical response.
func (w *World) AddBullet(pos cp.Vector, radius float64, ct cp.CollisionType, owner interface{}) (*cp.Body, *cp.Shape) {
	return w.addCircle(pos, radius, ct, CategoryBullet, true, owner)
}

func (w *World) addCircle(pos cp.Vector, radius float64, ct cp.CollisionType, categories uint, sensor bool, owner interface{}) (*cp.Body, *cp.Shape) {
	body := w.space.AddBody(cp.NewBody(1, cp.INFINITY))
	body.SetPosition(pos)
	body.UserData = owner

	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetCollisionType(ct)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categories, cp.ALL_CATEGORIES))
	shape.SetSensor(sensor)
	shape.SetFriction(0)
	shape.UserData = owner
	return body, shape
}

// Remove detaches body and its shapes. It must not be called while the
// space is stepping.
func (w *World) Remove(body *cp.Body) {
	if body == nil || !w.space.ContainsBody(body) {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(body)
}

// Step advances the simulation by dt. Bodies keep no momentum between
// ticks: movement intent is set as velocity before each step.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
	w.space.EachBody(func(b *cp.Body) {
		if b.GetType() != cp.BODY_DYNAMIC {
			return
		}
		b.SetVelocity(0, 0)
		b.SetAngularVelocity(0)
	})
}
