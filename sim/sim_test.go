package sim

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/ai"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/entity"
	"github.com/milk9111/triggered/levels"
	"github.com/milk9111/triggered/pathfind"
	"github.com/milk9111/triggered/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func loadSpecs(t *testing.T) prefabs.Specs {
	t.Helper()
	specs, err := prefabs.LoadSpecs()
	require.NoError(t, err)
	return specs
}

func corridor(player, enemy levels.Point) *levels.Level {
	return &levels.Level{
		Name: "corridor",
		Map: []string{
			"##########",
			"#        #",
			"##########",
		},
		Player:    player,
		Enemies:   []levels.Point{enemy},
		Waypoints: [][]levels.Point{nil},
	}
}

func TestLoadEmbeddedLevels(t *testing.T) {
	specs := loadSpecs(t)
	for _, name := range []string{"level_one", "level_two"} {
		t.Run(name, func(t *testing.T) {
			src, err := levels.Open(name)
			require.NoError(t, err)

			lvl, err := Load(src, specs)
			require.NoError(t, err)
			assert.Equal(t, Running, lvl.Status())
			assert.Len(t, lvl.Enemies(), len(src.Enemies))
			assert.Equal(t, len(src.Enemies), lvl.EnemiesTotal())
			assert.NotEmpty(t, lvl.Objectives())

			for i := 0; i < 30; i++ {
				lvl.Update(dt, entity.Input{})
			}
			assert.Equal(t, 30, lvl.Ticks())
		})
	}
}

func TestPathedRoutesFollowTheGrid(t *testing.T) {
	src, err := levels.Open("level_two")
	require.NoError(t, err)
	require.True(t, src.Pathed)

	lvl, err := Load(src, loadSpecs(t))
	require.NoError(t, err)

	for _, e := range lvl.Enemies() {
		wps := e.Controller().Waypoints()
		require.NotEmpty(t, wps)
		for i := 1; i < len(wps); i++ {
			assert.Contains(t, lvl.PathFinder().Neighbours(wps[i-1]), wps[i])
		}
		if len(wps) > 1 {
			assert.Contains(t, lvl.PathFinder().Neighbours(wps[len(wps)-1]), wps[0], "route closes on itself")
		}
	}
}

func TestPlayerClearsLevel(t *testing.T) {
	specs := loadSpecs(t)
	specs.Enemy.ChaseRadius = 0

	lvl, err := Load(corridor(levels.Point{150, 150}, levels.Point{650, 150}), specs)
	require.NoError(t, err)

	var events []component.CombatEvent
	in := entity.Input{Aim: cp.Vector{X: 650, Y: 150}, HasAim: true, FireHeld: true}
	for i := 0; i < 600 && lvl.Status() == Running; i++ {
		lvl.Update(dt, in)
		events = append(events, lvl.Events()...)
	}

	require.Equal(t, Passed, lvl.Status())
	assert.Empty(t, lvl.Enemies())
	assert.Less(t, lvl.Player().Ammo(), specs.Player.Ammo)

	var hits, deaths int
	for _, evt := range events {
		switch evt.Type {
		case component.EventHit:
			hits++
			assert.Equal(t, component.FactionEnemy, evt.Target)
		case component.EventDeath:
			deaths++
		}
	}
	assert.Equal(t, 10, hits, "100 health at 10 damage per hit")
	assert.Equal(t, 1, deaths)

	// Finished levels no longer advance.
	ticks := lvl.Ticks()
	lvl.Update(dt, in)
	assert.Equal(t, ticks, lvl.Ticks())
}

func TestEnemyKillsPlayer(t *testing.T) {
	specs := loadSpecs(t)
	specs.Player.Health = 10

	lvl, err := Load(corridor(levels.Point{150, 150}, levels.Point{400, 150}), specs)
	require.NoError(t, err)

	sawChase := false
	for i := 0; i < 600 && lvl.Status() == Running; i++ {
		lvl.Update(dt, entity.Input{})
		if len(lvl.Enemies()) > 0 && lvl.Enemies()[0].State() == ai.Chase {
			sawChase = true
		}
	}

	assert.True(t, sawChase)
	assert.Equal(t, Failed, lvl.Status())
	assert.True(t, lvl.Player().Dead())
	assert.False(t, lvl.World().Space().ContainsBody(lvl.Player().Body()))
}

func TestEnemySeesPlayerInOpenRoom(t *testing.T) {
	specs := loadSpecs(t)
	lvl, err := Load(corridor(levels.Point{150, 150}, levels.Point{350, 150}), specs)
	require.NoError(t, err)

	enemy := lvl.Enemies()[0]
	assert.True(t, lvl.World().LineOfSight(enemy.Position(), lvl.Player().Position()))

	sawChase := false
	for i := 0; i < 10 && !sawChase; i++ {
		lvl.Update(dt, entity.Input{})
		sawChase = enemy.State() == ai.Chase
	}
	assert.True(t, sawChase)
}

func TestWallBlocksSight(t *testing.T) {
	specs := loadSpecs(t)
	src := &levels.Level{
		Name: "blocked",
		Map: []string{
			"#######",
			"#  #  #",
			"#######",
		},
		Player:    levels.Point{250, 150},
		Enemies:   []levels.Point{{450, 150}},
		Waypoints: [][]levels.Point{nil},
	}
	lvl, err := Load(src, specs)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		lvl.Update(dt, entity.Input{})
	}
	assert.Equal(t, ai.Patrol, lvl.Enemies()[0].State())
	assert.Empty(t, lvl.Bullets())
	assert.Equal(t, Running, lvl.Status())
}

func TestBulletsAreRemovedOnWallHit(t *testing.T) {
	specs := loadSpecs(t)
	specs.Enemy.ChaseRadius = 0

	lvl, err := Load(corridor(levels.Point{450, 150}, levels.Point{850, 150}), specs)
	require.NoError(t, err)

	lvl.Update(dt, entity.Input{Aim: cp.Vector{X: 0, Y: 150}, HasAim: true, Fire: true})
	require.Len(t, lvl.Bullets(), 1)
	body := lvl.Bullets()[0].Body()

	for i := 0; i < 60; i++ {
		lvl.Update(dt, entity.Input{})
	}
	assert.Empty(t, lvl.Bullets())
	assert.False(t, lvl.World().Space().ContainsBody(body))
}

func TestLoadFailures(t *testing.T) {
	specs := loadSpecs(t)

	_, err := Load(&levels.Level{Name: "empty"}, specs)
	assert.ErrorIs(t, err, levels.ErrNoMap)

	bad := corridor(levels.Point{150, 150}, levels.Point{650, 150})
	bad.Objectives = []levels.Objective{{Text: "broken", Condition: "enemies_alive =="}}
	_, err = Load(bad, specs)
	assert.ErrorContains(t, err, "broken")

	walled := &levels.Level{
		Name:      "walled",
		Map:       []string{"#####", "# # #", "#####"},
		Player:    levels.Point{150, 150},
		Enemies:   []levels.Point{{150, 150}},
		Waypoints: [][]levels.Point{{{150, 150}, {350, 150}}},
		Pathed:    true,
	}
	_, err = Load(walled, specs)
	assert.ErrorIs(t, err, pathfind.ErrUnreachable)
}

func TestManager(t *testing.T) {
	specs := loadSpecs(t)
	opened := map[string]int{}
	open := func(name string) (*levels.Level, error) {
		opened[name]++
		if name == "missing" {
			return nil, errors.New("not found")
		}
		src := corridor(levels.Point{150, 150}, levels.Point{650, 150})
		src.Name = name
		return src, nil
	}

	_, err := NewManager(nil, specs, open)
	require.ErrorIs(t, err, ErrNoLevels)

	m, err := NewManager([]string{"a", "b", "missing"}, specs, open)
	require.NoError(t, err)

	lvl, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "a", lvl.Name)
	assert.Same(t, lvl, m.Current())

	lvl, err = m.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", lvl.Name)

	_, err = m.Next()
	assert.ErrorContains(t, err, "open missing")

	lvl, err = m.Next()
	assert.NoError(t, err)
	assert.Nil(t, lvl)
	assert.True(t, m.Completed())

	require.NoError(t, m.Set("a"))
	assert.False(t, m.Completed())
	assert.Equal(t, 0, m.Index())
	assert.ErrorIs(t, m.Set("zzz"), ErrUnknownLevel)
	assert.Equal(t, 1, opened["a"])
}
