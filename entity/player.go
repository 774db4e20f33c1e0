package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/common"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/physics"
	"github.com/milk9111/triggered/prefabs"
)

// Input is the player's intent for one tick.
type Input struct {
	// Move is the raw movement axis, each component in [-1, 1].
	Move cp.Vector
	Run  bool
	// Aim is the world point the player faces.
	Aim      cp.Vector
	HasAim   bool
	Fire     bool
	FireHeld bool
}

type Player struct {
	agentBody

	spec    prefabs.PlayerSpec
	weapon  component.Weapon
	spawner Spawner
}

func NewPlayer(w *physics.World, pos cp.Vector, spec prefabs.PlayerSpec, spawner Spawner) *Player {
	p := &Player{
		spec:    spec,
		spawner: spawner,
		weapon: component.Weapon{
			Muzzle:    spec.Muzzle.Vector(),
			Frequency: spec.FireFrequency,
			Ammo:      spec.Ammo,
		},
	}
	p.radius = spec.Radius
	p.health = component.NewHealth(spec.Health)
	p.body, p.shape = w.AddAgent(pos, spec.Radius, physics.CollisionPlayer, p)
	return p
}

func (p *Player) Faction() component.Faction {
	return component.FactionPlayer
}

func (p *Player) Ammo() int {
	return p.weapon.Ammo
}

func (p *Player) Update(dt float64, in Input) {
	pos := p.Position()
	if in.HasAim && in.Aim != pos {
		p.SetAngle(common.LookAt(pos, in.Aim))
	}

	speed := p.spec.Speed
	if in.Run && p.spec.RunMultiplier > 0 {
		speed *= p.spec.RunMultiplier
	}
	p.SetVelocity(common.Normalize(in.Move).Mult(speed))

	switch {
	case in.Fire:
		p.weapon.ResetCadence()
		p.fire()
	case in.FireHeld && p.weapon.Tick():
		p.fire()
	}
}

func (p *Player) fire() {
	if p.spawner == nil || !p.weapon.UseAmmo() {
		return
	}
	pos := p.Position()
	angle := p.Angle()
	p.spawner.SpawnBullet(p.weapon.MuzzlePosition(pos, angle), cp.ForAngle(angle), component.FactionPlayer)
}

// TakeHit applies the player's fixed per-hit damage and reports death.
func (p *Player) TakeHit(tick int) bool {
	return p.health.ApplyDamage(component.CombatEvent{
		Type:     component.EventHit,
		Attacker: component.FactionEnemy,
		Target:   component.FactionPlayer,
		Damage:   p.spec.DamageTaken,
		Pos:      p.Position(),
		Tick:     tick,
	})
}
