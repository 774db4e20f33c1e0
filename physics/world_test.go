package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T, rows ...string) *World {
	t.Helper()
	g, err := grid.New(rows, 100, cp.Vector{})
	require.NoError(t, err)
	return New(g, 0)
}

func TestLineOfSight(t *testing.T) {
	w := newWorld(t,
		"     ",
		"  #  ",
		"     ",
	)

	cases := []struct {
		name string
		a, b cp.Vector
		want bool
	}{
		{"clear_row", cp.Vector{X: 50, Y: 50}, cp.Vector{X: 450, Y: 50}, true},
		{"through_wall", cp.Vector{X: 50, Y: 150}, cp.Vector{X: 450, Y: 150}, false},
		{"below_wall", cp.Vector{X: 50, Y: 250}, cp.Vector{X: 450, Y: 250}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, w.LineOfSight(c.a, c.b))
		})
	}
}

func TestLineOfSightIgnoresAgentsAndBullets(t *testing.T) {
	w := newWorld(t, "     ")
	w.AddAgent(cp.Vector{X: 250, Y: 50}, 25, CollisionEnemy, "enemy")
	w.AddBullet(cp.Vector{X: 150, Y: 50}, 10, CollisionPlayerBullet, "bullet")

	assert.True(t, w.LineOfSight(cp.Vector{X: 50, Y: 50}, cp.Vector{X: 450, Y: 50}))

	// An unfiltered ray still stops at the agent. Sensors are never hit.
	info, hit := w.Raycast(cp.Vector{X: 50, Y: 50}, cp.Vector{X: 450, Y: 50}, 1, cp.SHAPE_FILTER_ALL)
	require.True(t, hit)
	assert.Equal(t, "enemy", info.Shape.UserData)
}

func TestLineOfSightBetweenAgents(t *testing.T) {
	w := newWorld(t, "          ")
	enemy := cp.Vector{X: 50, Y: 50}
	player := cp.Vector{X: 250, Y: 50}
	w.AddAgent(enemy, 22.5, CollisionEnemy, "enemy")
	w.AddAgent(player, 22.5, CollisionPlayer, "player")

	assert.True(t, w.LineOfSight(enemy, player))
	assert.True(t, w.LineOfSight(player, enemy))

	_, hit := w.Raycast(enemy, player, SightRadius, SightFilter)
	assert.False(t, hit)
}

func TestBulletHitsWall(t *testing.T) {
	w := newWorld(t, "   #")

	var hits []interface{}
	w.OnBegin(CollisionPlayerBullet, CollisionWall, func(a, b interface{}) bool {
		hits = append(hits, a)
		return false
	})

	body, _ := w.AddBullet(cp.Vector{X: 250, Y: 50}, 10, CollisionPlayerBullet, "bullet")
	for i := 0; i < 30 && len(hits) == 0; i++ {
		body.SetVelocity(500, 0)
		w.Step(1.0 / 60)
	}
	require.NotEmpty(t, hits)
	assert.Equal(t, "bullet", hits[0])

	w.Remove(body)
	assert.False(t, w.Space().ContainsBody(body))
	w.Remove(body)
}

func TestStepClearsVelocity(t *testing.T) {
	w := newWorld(t, "     ")
	body, _ := w.AddAgent(cp.Vector{X: 50, Y: 50}, 25, CollisionPlayer, nil)

	body.SetVelocity(60, 0)
	w.Step(1.0 / 60)

	assert.InDelta(t, 51, body.Position().X, 1e-6)
	assert.Equal(t, cp.Vector{}, body.Velocity())
}
