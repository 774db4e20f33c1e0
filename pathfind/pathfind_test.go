package pathfind

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFinder(t *testing.T, rows ...string) *PathFinder {
	t.Helper()
	g, err := grid.New(rows, 100, cp.Vector{})
	require.NoError(t, err)
	return New(g)
}

func center(col, row int) cp.Vector {
	return cp.Vector{X: float64(col)*100 + 50, Y: float64(row)*100 + 50}
}

// bfsLen returns the number of points on a shortest path, or 0 when none exists.
func bfsLen(pf *PathFinder, start, goal grid.Cell) int {
	dist := map[grid.Cell]int{start: 1}
	queue := []grid.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, n := range pf.neighbourCells(cur) {
			if _, ok := dist[n]; ok {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return 0
}

func TestNeighboursOrderAndWalls(t *testing.T) {
	pf := mustFinder(t,
		"#####",
		"#   #",
		"# # #",
		"#####",
	)

	assert.Equal(t, []cp.Vector{center(1, 2), center(2, 1)}, pf.Neighbours(center(1, 1)))
	assert.Equal(t, []cp.Vector{center(3, 1)}, pf.Neighbours(center(3, 2)))
	assert.Equal(t, 1.0, pf.Cost(center(1, 1), center(2, 1)))
}

func TestCalculatePathIsValidAndShortest(t *testing.T) {
	rows := []string{
		"##########",
		"#    #   #",
		"# ## # # #",
		"#  #   # #",
		"## ##### #",
		"#        #",
		"##########",
	}
	pf := mustFinder(t, rows...)

	cases := []struct {
		name  string
		start grid.Cell
		goal  grid.Cell
	}{
		{"corridor", grid.Cell{Col: 1, Row: 1}, grid.Cell{Col: 4, Row: 1}},
		{"around_walls", grid.Cell{Col: 1, Row: 1}, grid.Cell{Col: 8, Row: 1}},
		{"down_and_across", grid.Cell{Col: 2, Row: 3}, grid.Cell{Col: 8, Row: 5}},
		{"same", grid.Cell{Col: 4, Row: 3}, grid.Cell{Col: 4, Row: 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start := pf.grid.CellToWorld(c.start)
			goal := pf.grid.CellToWorld(c.goal)

			path, err := pf.CalculatePath(start, goal)
			require.NoError(t, err)
			require.NotEmpty(t, path)
			assert.Equal(t, start, path[0])
			assert.Equal(t, goal, path[len(path)-1])
			assert.Equal(t, bfsLen(pf, c.start, c.goal), len(path))

			for i := 1; i < len(path); i++ {
				assert.Contains(t, pf.Neighbours(path[i-1]), path[i], "step %d is not adjacent", i)
			}
		})
	}
}

func TestCalculatePathSamePoint(t *testing.T) {
	pf := mustFinder(t, "   ")
	path, err := pf.CalculatePath(center(1, 0), center(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []cp.Vector{center(1, 0)}, path)
}

func TestCalculatePathErrors(t *testing.T) {
	pf := mustFinder(t,
		"  #  ",
		"  #  ",
	)

	_, err := pf.CalculatePath(center(0, 0), center(4, 1))
	require.ErrorIs(t, err, ErrUnreachable)
	var ue *UnreachableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, center(4, 1), ue.Goal)

	_, err = pf.CalculatePath(center(2, 0), center(0, 0))
	assert.ErrorIs(t, err, ErrNotWalkable)

	_, err = pf.CalculatePath(center(0, 0), cp.Vector{X: -500, Y: 0})
	assert.ErrorIs(t, err, ErrNotWalkable)
}

func TestClosestPoint(t *testing.T) {
	pf := mustFinder(t,
		"# #",
		"   ",
	)

	for _, w := range pf.grid.Walkable() {
		assert.Equal(t, w, pf.ClosestPoint(w))
	}
	// Equidistant from (1,0) and (0,1); row-major order picks (1,0).
	assert.Equal(t, center(1, 0), pf.ClosestPoint(cp.Vector{X: 100, Y: 100}))
	assert.Equal(t, center(0, 1), pf.ClosestPoint(cp.Vector{X: -1000, Y: 1000}))
}

func TestCalcPatrolPath(t *testing.T) {
	pf := mustFinder(t,
		"#####",
		"#   #",
		"#   #",
		"#####",
	)
	a, b, c := center(1, 1), center(3, 1), center(3, 2)

	path, err := pf.CalcPatrolPath([]cp.Vector{a, b, c})
	require.NoError(t, err)

	assert.Equal(t, a, path[0])
	assert.Equal(t, a, path[len(path)-1])
	assert.Contains(t, path, b)
	assert.Contains(t, path, c)
	for i := 1; i < len(path); i++ {
		assert.NotEqual(t, path[i-1], path[i], "duplicate at %d", i)
		assert.Contains(t, pf.Neighbours(path[i-1]), path[i])
	}
	// A->B is 3 points, B->C adds 1, C->A adds 3.
	assert.Len(t, path, 7)

	single, err := pf.CalcPatrolPath([]cp.Vector{{X: 110, Y: 120}})
	require.NoError(t, err)
	assert.Equal(t, []cp.Vector{a}, single)

	_, err = pf.CalcPatrolPath(nil)
	assert.ErrorIs(t, err, ErrNoWaypoints)
}
