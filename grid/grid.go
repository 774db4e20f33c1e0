// Package grid models a level as a rectangular occupancy grid of square cells.
package grid

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// Tag classifies a single cell of the map.
type Tag byte

const (
	Wall  Tag = '#'
	Floor Tag = ' '
	Empty Tag = '.'
)

var (
	ErrEmptyMap  = errors.New("grid: empty map")
	ErrRaggedMap = errors.New("grid: rows have different lengths")
	ErrCellSize  = errors.New("grid: cell size must be positive")
)

// Cell addresses a grid cell by column and row.
type Cell struct {
	Col int
	Row int
}

// Grid is immutable once built. A level reload builds a new Grid.
type Grid struct {
	CellSize float64
	Origin   cp.Vector

	cells    [][]Tag
	walkable []cp.Vector
}

// New builds a grid from text rows. Any character other than '#' and ' ' is empty.
func New(rows []string, cellSize float64, origin cp.Vector) (*Grid, error) {
	if cellSize <= 0 {
		return nil, ErrCellSize
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(rows[0])
	cells := make([][]Tag, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedMap, y, len(row), width)
		}
		cells[y] = make([]Tag, width)
		for x := 0; x < width; x++ {
			switch Tag(row[x]) {
			case Wall:
				cells[y][x] = Wall
			case Floor:
				cells[y][x] = Floor
			default:
				cells[y][x] = Empty
			}
		}
	}

	g := &Grid{CellSize: cellSize, Origin: origin, cells: cells}
	g.walkable = g.collectWalkable()
	return g, nil
}

func (g *Grid) collectWalkable() []cp.Vector {
	out := make([]cp.Vector, 0, g.Width()*g.Height())
	for y, row := range g.cells {
		for x, tag := range row {
			if tag == Wall {
				continue
			}
			out = append(out, g.CellToWorld(Cell{Col: x, Row: y}))
		}
	}
	return out
}

func (g *Grid) Width() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

func (g *Grid) Height() int {
	return len(g.cells)
}

// Size returns the grid extent in world units.
func (g *Grid) Size() (float64, float64) {
	return float64(g.Width()) * g.CellSize, float64(g.Height()) * g.CellSize
}

// Bounds returns the world-space rectangle covered by the grid.
func (g *Grid) Bounds() cp.BB {
	w, h := g.Size()
	return cp.BB{L: g.Origin.X, B: g.Origin.Y, R: g.Origin.X + w, T: g.Origin.Y + h}
}

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Height() && c.Col >= 0 && c.Col < g.Width()
}

// Tag returns the tag of c. Out of bounds cells read as Wall.
func (g *Grid) Tag(c Cell) Tag {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[c.Row][c.Col]
}

func (g *Grid) IsWalkable(c Cell) bool {
	return g.Tag(c) != Wall
}

// Walkable returns the centers of all non-wall cells in row-major order.
// The slice is shared and must not be modified.
func (g *Grid) Walkable() []cp.Vector {
	return g.walkable
}

// CellToWorld returns the center of c.
func (g *Grid) CellToWorld(c Cell) cp.Vector {
	half := g.CellSize * 0.5
	return cp.Vector{
		X: g.Origin.X + float64(c.Col)*g.CellSize + half,
		Y: g.Origin.Y + float64(c.Row)*g.CellSize + half,
	}
}

// WorldToCell returns the cell containing p. The result may be out of bounds.
func (g *Grid) WorldToCell(p cp.Vector) Cell {
	return Cell{
		Col: floorDiv(p.X-g.Origin.X, g.CellSize),
		Row: floorDiv(p.Y-g.Origin.Y, g.CellSize),
	}
}

// CellBB returns the world-space box of c.
func (g *Grid) CellBB(c Cell) cp.BB {
	x0 := g.Origin.X + float64(c.Col)*g.CellSize
	y0 := g.Origin.Y + float64(c.Row)*g.CellSize
	return cp.BB{L: x0, B: y0, R: x0 + g.CellSize, T: y0 + g.CellSize}
}

func floorDiv(v, size float64) int {
	q := v / size
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
