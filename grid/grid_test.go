package grid

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadMaps(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		size float64
		want error
	}{
		{"empty", nil, 100, ErrEmptyMap},
		{"empty_row", []string{""}, 100, ErrEmptyMap},
		{"ragged", []string{"###", "#"}, 100, ErrRaggedMap},
		{"zero_size", []string{"#"}, 0, ErrCellSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.rows, c.size, cp.Vector{})
			require.ErrorIs(t, err, c.want)
		})
	}
}

func TestWalkableRowMajor(t *testing.T) {
	g, err := New([]string{
		"# .",
		" ##",
	}, 100, cp.Vector{})
	require.NoError(t, err)

	assert.Equal(t, []cp.Vector{
		{X: 150, Y: 50},
		{X: 250, Y: 50},
		{X: 50, Y: 150},
	}, g.Walkable())
	assert.Equal(t, Empty, g.Tag(Cell{Col: 2, Row: 0}))
	assert.Equal(t, Wall, g.Tag(Cell{Col: -1, Row: 0}))
}

func TestCellWorldRoundTrip(t *testing.T) {
	g, err := New([]string{"    ", "    ", "    "}, 32, cp.Vector{X: -10, Y: 20})
	require.NoError(t, err)

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			c := Cell{Col: col, Row: row}
			assert.Equal(t, c, g.WorldToCell(g.CellToWorld(c)))
		}
	}
	assert.Equal(t, Cell{Col: -1, Row: -1}, g.WorldToCell(cp.Vector{X: -11, Y: 19}))
}

func TestRectsMergesWalls(t *testing.T) {
	g, err := New([]string{
		"#####",
		"#   #",
		"#####",
	}, 10, cp.Vector{})
	require.NoError(t, err)

	rects := g.Rects(Wall)
	covered := 0
	for _, r := range rects {
		covered += r.W * r.H
	}
	assert.Equal(t, 12, covered)
	assert.Len(t, rects, 4)
	assert.Equal(t, CellRect{Col: 0, Row: 0, W: 5, H: 1}, rects[0])
	assert.Equal(t, cp.BB{L: 0, B: 0, R: 50, T: 10}, g.RectBB(rects[0]))
}
