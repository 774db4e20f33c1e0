package entity

import (
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/ai"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/physics"
	"github.com/milk9111/triggered/prefabs"
)

type Enemy struct {
	agentBody

	ID      int
	spec    prefabs.EnemySpec
	weapon  component.Weapon
	ctrl    *ai.Controller
	spawner Spawner
}

// EnemyEnv carries what an enemy needs from its level.
type EnemyEnv struct {
	World     *physics.World
	Target    ai.Target
	Navigator ai.Navigator
	Spawner   Spawner
	Debug     bool
}

func NewEnemy(id int, pos cp.Vector, route []cp.Vector, spec prefabs.EnemySpec, env EnemyEnv) (*Enemy, error) {
	e := &Enemy{
		ID:      id,
		spec:    spec,
		spawner: env.Spawner,
		weapon:  component.Weapon{Muzzle: spec.Muzzle.Vector(), Ammo: -1},
	}
	e.radius = spec.Radius
	e.health = component.NewHealth(spec.Health)

	var sight ai.Sight
	if env.World != nil {
		sight = env.World
	}
	cfg := ai.Config{
		Name:            strconv.Itoa(id),
		Speed:           spec.Speed,
		ChaseRadius:     spec.ChaseRadius,
		AttackRadius:    spec.AttackRadius,
		AttackFrequency: spec.AttackFrequency,
		Epsilon:         spec.Epsilon,
		Debug:           env.Debug,
	}
	ctrl, err := ai.NewController(cfg, route, ai.Deps{
		Body:      e,
		Target:    env.Target,
		Sight:     sight,
		Navigator: env.Navigator,
		Shooter:   e,
	})
	if err != nil {
		return nil, err
	}
	e.ctrl = ctrl
	e.body, e.shape = env.World.AddAgent(pos, spec.Radius, physics.CollisionEnemy, e)
	return e, nil
}

func (e *Enemy) Faction() component.Faction {
	return component.FactionEnemy
}

func (e *Enemy) Controller() *ai.Controller {
	return e.ctrl
}

func (e *Enemy) State() ai.State {
	return e.ctrl.State()
}

func (e *Enemy) Update(dt float64) {
	if e.Dead() {
		return
	}
	e.ctrl.Update(dt)
}

// Fire spawns a bullet from the muzzle along dir.
func (e *Enemy) Fire(dir cp.Vector) {
	if e.spawner == nil {
		return
	}
	e.spawner.SpawnBullet(e.weapon.MuzzlePosition(e.Position(), e.Angle()), dir, component.FactionEnemy)
}

func (e *Enemy) TakeHit(tick int) bool {
	return e.health.ApplyDamage(component.CombatEvent{
		Type:     component.EventHit,
		Attacker: component.FactionPlayer,
		Target:   component.FactionEnemy,
		Damage:   e.spec.DamageTaken,
		Pos:      e.Position(),
		Tick:     tick,
	})
}
