// Package entity binds players, enemies and bullets to physics bodies.
package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/component"
)

// Spawner receives bullets fired by agents.
type Spawner interface {
	SpawnBullet(pos, dir cp.Vector, owner component.Faction)
}

// Damageable is anything a bullet can hurt.
type Damageable interface {
	Faction() component.Faction
	TakeHit(tick int) bool
	Dead() bool
}

// Agent is the read model the renderer draws.
type Agent interface {
	Position() cp.Vector
	Angle() float64
	Radius() float64
	Dead() bool
	HealthFraction() float64
}

// agentBody implements the shared body accessors of players and enemies.
type agentBody struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	health *component.Health
}

func (a *agentBody) Position() cp.Vector {
	return a.body.Position()
}

func (a *agentBody) Angle() float64 {
	return a.body.Angle()
}

func (a *agentBody) SetAngle(angle float64) {
	a.body.SetAngle(angle)
}

func (a *agentBody) SetVelocity(v cp.Vector) {
	a.body.SetVelocityVector(v)
}

func (a *agentBody) Radius() float64 {
	return a.radius
}

func (a *agentBody) Body() *cp.Body {
	return a.body
}

func (a *agentBody) Health() *component.Health {
	return a.health
}

func (a *agentBody) Dead() bool {
	return a.health.Dead()
}

func (a *agentBody) HealthFraction() float64 {
	return a.health.Fraction()
}
