package sim

import (
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/entity"
	"github.com/milk9111/triggered/physics"
)

func (l *Level) registerCollisions() {
	l.world.OnBegin(physics.CollisionPlayerBullet, physics.CollisionWall, l.bulletHitsWall)
	l.world.OnBegin(physics.CollisionEnemyBullet, physics.CollisionWall, l.bulletHitsWall)
	l.world.OnBegin(physics.CollisionPlayerBullet, physics.CollisionEnemy, l.bulletHitsAgent)
	l.world.OnBegin(physics.CollisionEnemyBullet, physics.CollisionPlayer, l.bulletHitsAgent)
}

func (l *Level) bulletHitsWall(a, _ interface{}) bool {
	if b, ok := a.(*entity.Bullet); ok {
		b.Destroy()
	}
	return false
}

// bulletHitsAgent damages the target once per bullet. The bullet is only
// marked here; bodies leave the space in the cleanup after the step.
func (l *Level) bulletHitsAgent(a, b interface{}) bool {
	bullet, ok := a.(*entity.Bullet)
	if !ok || bullet.Destroyed() {
		return false
	}
	target, ok := b.(entity.Damageable)
	if !ok || target.Dead() || target.Faction() == bullet.Owner() {
		return false
	}
	bullet.Destroy()

	killed := target.TakeHit(l.ticks)
	evt := component.CombatEvent{
		Type:     component.EventHit,
		Attacker: bullet.Owner(),
		Target:   target.Faction(),
		Pos:      bullet.Position(),
		Tick:     l.ticks,
	}
	l.emitter.Emit(evt)
	if killed {
		evt.Type = component.EventDeath
		l.emitter.Emit(evt)
	}
	return false
}
