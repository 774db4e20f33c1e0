package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/common"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/physics"
)

type Bullet struct {
	body   *cp.Body
	shape  *cp.Shape
	dir    cp.Vector
	speed  float64
	radius float64
	owner  component.Faction

	destroyed bool
}

func NewBullet(w *physics.World, pos, dir cp.Vector, speed, radius float64, owner component.Faction) *Bullet {
	b := &Bullet{
		dir:    common.Normalize(dir),
		speed:  speed,
		radius: radius,
		owner:  owner,
	}
	ct := physics.CollisionPlayerBullet
	if owner == component.FactionEnemy {
		ct = physics.CollisionEnemyBullet
	}
	b.body, b.shape = w.AddBullet(pos, radius, ct, b)
	b.body.SetAngle(common.LookAt(cp.Vector{}, b.dir))
	b.Update()
	return b
}

// Update keeps the bullet moving along its direction at fixed speed.
func (b *Bullet) Update() {
	if b.destroyed {
		b.body.SetVelocity(0, 0)
		return
	}
	b.body.SetVelocityVector(b.dir.Mult(b.speed))
}

func (b *Bullet) Position() cp.Vector {
	return b.body.Position()
}

func (b *Bullet) Dir() cp.Vector {
	return b.dir
}

func (b *Bullet) Radius() float64 {
	return b.radius
}

func (b *Bullet) Owner() component.Faction {
	return b.owner
}

func (b *Bullet) Body() *cp.Body {
	return b.body
}

// Destroy marks the bullet for removal at the next cleanup.
func (b *Bullet) Destroy() {
	b.destroyed = true
}

func (b *Bullet) Destroyed() bool {
	return b.destroyed
}
