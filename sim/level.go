// Package sim runs one level: physics, agents, bullets and objectives.
package sim

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/entity"
	"github.com/milk9111/triggered/grid"
	"github.com/milk9111/triggered/levels"
	"github.com/milk9111/triggered/pathfind"
	"github.com/milk9111/triggered/physics"
	"github.com/milk9111/triggered/prefabs"
)

type Status int

const (
	Running Status = iota
	Failed
	Passed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Failed:
		return "failed"
	case Passed:
		return "passed"
	default:
		return "unknown"
	}
}

// Level owns the grid, pathfinder, physics world and every agent of a loaded level.
type Level struct {
	Name string

	source *levels.Level
	specs  prefabs.Specs

	grid   *grid.Grid
	finder *pathfind.PathFinder
	world  *physics.World

	player  *entity.Player
	enemies []*entity.Enemy
	bullets []*entity.Bullet

	objectives   []*Objective
	status       Status
	enemiesTotal int
	ticks        int
	elapsed      float64

	emitter component.CombatEventEmitter
	events  []component.CombatEvent
}

// Load builds a runnable level. Bad map data, enemies without a path back to
// their patrol or broken objectives fail here rather than mid-game.
func Load(src *levels.Level, specs prefabs.Specs) (*Level, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("sim: load %q: %w", src.Name, err)
	}
	nodeSize := src.NodeSize
	if nodeSize <= 0 {
		nodeSize = specs.Game.NodeSize
	}
	g, err := grid.New(src.Map, nodeSize, cp.Vector{})
	if err != nil {
		return nil, fmt.Errorf("sim: load %q: %w", src.Name, err)
	}

	l := &Level{
		Name:   src.Name,
		source: src,
		specs:  specs,
		grid:   g,
		finder: pathfind.New(g),
		world:  physics.New(g, specs.Game.PhysicsIterations),
	}
	l.emitter.Subscribe(func(evt component.CombatEvent) {
		l.events = append(l.events, evt)
	})
	l.registerCollisions()

	l.player = entity.NewPlayer(l.world, src.Player.Vector(), specs.Player, l)

	for i, spawn := range src.Enemies {
		route, err := l.patrolRoute(i)
		if err != nil {
			return nil, fmt.Errorf("sim: load %q: enemy %d: %w", src.Name, i, err)
		}
		e, err := entity.NewEnemy(i, spawn.Vector(), route, specs.Enemy, entity.EnemyEnv{
			World:     l.world,
			Target:    l.player,
			Navigator: l.finder,
			Spawner:   l,
			Debug:     specs.Game.Debug,
		})
		if err != nil {
			return nil, fmt.Errorf("sim: load %q: enemy %d: %w", src.Name, i, err)
		}
		l.enemies = append(l.enemies, e)
	}
	l.enemiesTotal = len(l.enemies)

	if l.objectives, err = compileObjectives(src.ObjectiveList()); err != nil {
		return nil, fmt.Errorf("sim: load %q: %w", src.Name, err)
	}

	log.Printf("Level: loaded %q (%dx%d, %d enemies, %d objectives)", l.Name, g.Width(), g.Height(), len(l.enemies), len(l.objectives))
	return l, nil
}

// patrolRoute expands enemy i's waypoints. Pathed levels walk grid paths
// between them. The closing point of a pathed loop is dropped because the
// waypoint index wraps to it anyway.
func (l *Level) patrolRoute(i int) ([]cp.Vector, error) {
	route := l.source.PatrolRoute(i)
	if !l.source.Pathed || len(route) < 2 {
		return route, nil
	}
	path, err := l.finder.CalcPatrolPath(route)
	if err != nil {
		return nil, err
	}
	if len(path) > 1 {
		path = path[:len(path)-1]
	}
	return path, nil
}

// SpawnBullet implements entity.Spawner.
func (l *Level) SpawnBullet(pos, dir cp.Vector, owner component.Faction) {
	b := entity.NewBullet(l.world, pos, dir, l.specs.Bullet.Speed, l.specs.Bullet.Radius, owner)
	l.bullets = append(l.bullets, b)
	l.emitter.Emit(component.CombatEvent{Type: component.EventFire, Attacker: owner, Pos: pos, Tick: l.ticks})
}

// Update advances the level by one tick: physics step, cleanup of destroyed
// bodies, player, enemies, bullets, then the level status.
func (l *Level) Update(dt float64, in entity.Input) {
	if l.status != Running {
		return
	}

	l.world.Step(dt)
	l.cleanup()

	if !l.player.Dead() {
		l.player.Update(dt, in)
	}
	for _, e := range l.enemies {
		e.Update(dt)
	}

	bounds := l.grid.Bounds()
	for _, b := range l.bullets {
		if !bounds.ContainsVect(b.Position()) {
			b.Destroy()
		}
		b.Update()
	}

	l.ticks++
	l.elapsed += dt
	l.evaluate()
}

func (l *Level) cleanup() {
	bullets := l.bullets[:0]
	for _, b := range l.bullets {
		if b.Destroyed() {
			l.world.Remove(b.Body())
			continue
		}
		bullets = append(bullets, b)
	}
	for i := len(bullets); i < len(l.bullets); i++ {
		l.bullets[i] = nil
	}
	l.bullets = bullets

	enemies := l.enemies[:0]
	for _, e := range l.enemies {
		if e.Dead() {
			l.world.Remove(e.Body())
			continue
		}
		enemies = append(enemies, e)
	}
	for i := len(enemies); i < len(l.enemies); i++ {
		l.enemies[i] = nil
	}
	l.enemies = enemies

	if l.player.Dead() {
		l.world.Remove(l.player.Body())
	}
}

func (l *Level) evaluate() {
	if l.player.Dead() {
		l.setStatus(Failed)
		return
	}

	state := ObjectiveState{
		EnemiesAlive: l.aliveEnemies(),
		EnemiesTotal: l.enemiesTotal,
		PlayerHealth: l.player.Health().Current,
		PlayerAmmo:   l.player.Ammo(),
		Elapsed:      l.elapsed,
		Ticks:        l.ticks,
	}
	done := true
	for _, o := range l.objectives {
		if err := o.Evaluate(state); err != nil {
			log.Printf("Level: %v", err)
		}
		done = done && o.Done
	}
	if done {
		l.setStatus(Passed)
	}
}

func (l *Level) setStatus(s Status) {
	if l.status == s {
		return
	}
	l.status = s
	log.Printf("Level: %q %s after %d ticks", l.Name, s, l.ticks)
}

func (l *Level) aliveEnemies() int {
	n := 0
	for _, e := range l.enemies {
		if !e.Dead() {
			n++
		}
	}
	return n
}

func (l *Level) Status() Status { return l.status }
func (l *Level) Player() *entity.Player { return l.player }
func (l *Level) Enemies() []*entity.Enemy { return l.enemies }
func (l *Level) Bullets() []*entity.Bullet { return l.bullets }
func (l *Level) Grid() *grid.Grid { return l.grid }
func (l *Level) World() *physics.World { return l.world }
func (l *Level) PathFinder() *pathfind.PathFinder { return l.finder }
func (l *Level) Objectives() []*Objective { return l.objectives }
func (l *Level) Source() *levels.Level { return l.source }
func (l *Level) Ticks() int { return l.ticks }
func (l *Level) Elapsed() float64 { return l.elapsed }
func (l *Level) EnemiesTotal() int { return l.enemiesTotal }

// Events returns and clears the combat events recorded since the last call.
func (l *Level) Events() []component.CombatEvent {
	out := l.events
	l.events = nil
	return out
}

// Subscribe adds a listener for combat events as they happen.
func (l *Level) Subscribe(h component.CombatEventHandler) {
	l.emitter.Subscribe(h)
}
