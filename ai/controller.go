// Package ai drives enemies through idle, patrol and chase behavior.
package ai

import (
	"errors"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/common"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/pathfind"
)

// State is the controller's current behavior.
type State int

const (
	Idle State = iota
	Patrol
	Chase
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Patrol:
		return "patrol"
	case Chase:
		return "chase"
	default:
		return "unknown"
	}
}

var (
	ErrNoTarget    = errors.New("ai: enemy has no target")
	ErrNoBody      = errors.New("ai: enemy has no body")
	ErrNoSight     = errors.New("ai: enemy has no line of sight provider")
	ErrNoWaypoints = errors.New("ai: enemy has no waypoints")
)

// Target is the agent an enemy watches.
type Target interface {
	Position() cp.Vector
	Dead() bool
}

// Body is the enemy's own physical presence. Velocity is applied by the
// next physics step.
type Body interface {
	Position() cp.Vector
	SetVelocity(v cp.Vector)
	SetAngle(a float64)
}

// Shooter fires a projectile along a unit direction.
type Shooter interface {
	Fire(dir cp.Vector)
}

// Sight answers whether the segment between two points is unobstructed.
type Sight interface {
	LineOfSight(a, b cp.Vector) bool
}

// Navigator plans grid paths. A nil Navigator disables return paths.
type Navigator interface {
	ClosestPoint(p cp.Vector) cp.Vector
	CalculatePath(start, goal cp.Vector) ([]cp.Vector, error)
}

// Deps are the collaborators a Controller drives. Navigator and Shooter may be nil.
type Deps struct {
	Body      Body
	Target    Target
	Sight     Sight
	Navigator Navigator
	Shooter   Shooter
}

// Config holds the per-enemy tuning read from the enemy prefab.
type Config struct {
	Name            string
	Speed           float64
	ChaseRadius     float64
	AttackRadius    float64
	AttackFrequency int
	// Epsilon is the distance under which a sub-target counts as reached.
	Epsilon float64
	Debug   bool
}

// Controller runs one enemy's state machine. It starts in Idle.
type Controller struct {
	cfg  Config
	deps Deps

	state     State
	waypoints []cp.Vector
	waypoint  int

	returnPath []cp.Vector
	returnIdx  int

	attack component.Weapon
}

// NewController copies waypoints and returns a controller in Idle. It fails with
// ErrNoTarget, ErrNoBody or ErrNoSight when the matching dependency is nil, and
// with ErrNoWaypoints when waypoints is empty.
func NewController(cfg Config, waypoints []cp.Vector, deps Deps) (*Controller, error) {
	switch {
	case deps.Target == nil:
		return nil, ErrNoTarget
	case deps.Body == nil:
		return nil, ErrNoBody
	case deps.Sight == nil:
		return nil, ErrNoSight
	case len(waypoints) == 0:
		return nil, ErrNoWaypoints
	}
	wp := make([]cp.Vector, len(waypoints))
	copy(wp, waypoints)
	return &Controller{
		cfg:       cfg,
		deps:      deps,
		waypoints: wp,
		attack:    component.Weapon{Frequency: cfg.AttackFrequency, Ammo: -1},
	}, nil
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Config() Config {
	return c.cfg
}

// PatrolTarget is the waypoint the enemy is currently heading for.
func (c *Controller) PatrolTarget() cp.Vector {
	return c.waypoints[c.waypoint]
}

func (c *Controller) Waypoints() []cp.Vector {
	return c.waypoints
}

func (c *Controller) WaypointIndex() int {
	return c.waypoint
}

// SetWaypointIndex restores patrol progress. The index wraps around.
func (c *Controller) SetWaypointIndex(i int) {
	n := len(c.waypoints)
	c.waypoint = ((i % n) + n) % n
}

// ReturnPath returns the points of the return path still to visit.
func (c *Controller) ReturnPath() []cp.Vector {
	if c.returnPath == nil {
		return nil
	}
	return c.returnPath[c.returnIdx:]
}

// Update runs one tick: state selection followed by the state's behavior.
func (c *Controller) Update(dt float64) {
	pos := c.deps.Body.Position()
	prev := c.state
	c.selectState(pos)
	if c.cfg.Debug && prev != c.state {
		log.Printf("Enemy %s: %s -> %s", c.cfg.Name, prev, c.state)
	}

	if prev == Idle {
		c.deps.Body.SetVelocity(cp.Vector{})
		if c.state == Patrol {
			return
		}
	}

	switch c.state {
	case Patrol:
		c.patrol(pos, dt)
	case Chase:
		c.chase(pos, dt)
	}
}

func (c *Controller) selectState(pos cp.Vector) {
	target := c.deps.Target
	if target.Dead() {
		c.state = Patrol
		return
	}

	tp := target.Position()
	if common.DistanceSq(pos, tp) < c.cfg.ChaseRadius*c.cfg.ChaseRadius {
		if c.deps.Sight.LineOfSight(pos, tp) {
			c.enterChase()
		} else {
			c.state = Patrol
		}
	} else if c.state == Chase {
		if c.deps.Sight.LineOfSight(pos, tp) {
			c.enterChase()
		} else {
			c.state = Patrol
			if !c.deps.Sight.LineOfSight(pos, c.PatrolTarget()) {
				c.planReturn(pos)
			}
		}
	}

	if c.state == Idle {
		c.state = Patrol
	}
}

func (c *Controller) enterChase() {
	c.state = Chase
	c.dropReturn()
}

func (c *Controller) planReturn(pos cp.Vector) {
	c.dropReturn()
	nav := c.deps.Navigator
	if nav == nil {
		return
	}
	path, err := nav.CalculatePath(nav.ClosestPoint(pos), nav.ClosestPoint(c.PatrolTarget()))
	if err != nil {
		if c.cfg.Debug || !errors.Is(err, pathfind.ErrUnreachable) {
			log.Printf("Enemy %s: return path: %v", c.cfg.Name, err)
		}
		return
	}
	c.returnPath = path
}

func (c *Controller) dropReturn() {
	c.returnPath = nil
	c.returnIdx = 0
}

func (c *Controller) patrol(pos cp.Vector, dt float64) {
	if c.returnPath != nil {
		target := c.returnPath[c.returnIdx]
		if c.reached(pos, target) {
			c.returnIdx++
			if c.returnIdx >= len(c.returnPath) {
				c.dropReturn()
			}
		}
		if c.returnPath != nil {
			c.steer(pos, c.returnPath[c.returnIdx], dt)
			return
		}
	}

	if c.reached(pos, c.PatrolTarget()) {
		c.SetWaypointIndex(c.waypoint + 1)
	}
	c.steer(pos, c.PatrolTarget(), dt)
}

func (c *Controller) chase(pos cp.Vector, dt float64) {
	tp := c.deps.Target.Position()
	c.deps.Body.SetAngle(common.LookAt(pos, tp))

	if common.DistanceSq(pos, tp) > c.cfg.AttackRadius*c.cfg.AttackRadius {
		c.move(pos, tp, dt)
		return
	}

	c.deps.Body.SetVelocity(cp.Vector{})
	if c.attack.Tick() && c.deps.Shooter != nil {
		c.deps.Shooter.Fire(common.Normalize(tp.Sub(pos)))
	}
}

func (c *Controller) reached(pos, target cp.Vector) bool {
	return common.DistanceSq(pos, target) < c.cfg.Epsilon*c.cfg.Epsilon
}

// steer faces target and moves toward it.
func (c *Controller) steer(pos, target cp.Vector, dt float64) {
	if pos != target {
		c.deps.Body.SetAngle(common.LookAt(pos, target))
	}
	c.move(pos, target, dt)
}

// move sets the velocity that carries the body speed*dt toward target
// without passing it.
func (c *Controller) move(pos, target cp.Vector, dt float64) {
	if dt <= 0 {
		c.deps.Body.SetVelocity(cp.Vector{})
		return
	}
	next := common.Step(pos, target, c.cfg.Speed*dt)
	c.deps.Body.SetVelocity(next.Sub(pos).Mult(1 / dt))
}
