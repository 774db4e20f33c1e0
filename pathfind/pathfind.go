// Package pathfind runs A* over the walkable cells of a grid.
package pathfind

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/grid"
)

var (
	ErrUnreachable = errors.New("pathfind: goal unreachable")
	ErrNotWalkable = errors.New("pathfind: point is not on a walkable cell")
	ErrNoWaypoints = errors.New("pathfind: no waypoints")
)

// UnreachableError reports the endpoints of a failed search. It matches ErrUnreachable.
type UnreachableError struct {
	Start cp.Vector
	Goal  cp.Vector
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("pathfind: no path from (%.1f, %.1f) to (%.1f, %.1f)", e.Start.X, e.Start.Y, e.Goal.X, e.Goal.Y)
}

func (e *UnreachableError) Unwrap() error {
	return ErrUnreachable
}

// Neighbour steps in enumeration order: +row, -row, +col, -col.
var directions = [4]grid.Cell{
	{Col: 0, Row: 1},
	{Col: 0, Row: -1},
	{Col: 1, Row: 0},
	{Col: -1, Row: 0},
}

// PathFinder holds no state between calls.
type PathFinder struct {
	grid *grid.Grid
}

func New(g *grid.Grid) *PathFinder {
	if g == nil {
		panic("pathfind: nil grid")
	}
	return &PathFinder{grid: g}
}

func (pf *PathFinder) Grid() *grid.Grid {
	return pf.grid
}

// Neighbours returns the walkable cell centers one cell away from p.
func (pf *PathFinder) Neighbours(p cp.Vector) []cp.Vector {
	c := pf.grid.WorldToCell(p)
	out := make([]cp.Vector, 0, 4)
	for _, n := range pf.neighbourCells(c) {
		out = append(out, pf.grid.CellToWorld(n))
	}
	return out
}

func (pf *PathFinder) neighbourCells(c grid.Cell) []grid.Cell {
	out := make([]grid.Cell, 0, 4)
	for _, d := range directions {
		n := grid.Cell{Col: c.Col + d.Col, Row: c.Row + d.Row}
		if pf.grid.IsWalkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Cost of moving between two adjacent cells.
func (pf *PathFinder) Cost(a, b cp.Vector) float64 {
	return 1
}

// ClosestPoint returns the walkable cell center nearest to p. The first
// minimum in row-major order wins.
func (pf *PathFinder) ClosestPoint(p cp.Vector) cp.Vector {
	best := p
	bestDist := math.Inf(1)
	for _, w := range pf.grid.Walkable() {
		dx := w.X - p.X
		dy := w.Y - p.Y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = w
		}
	}
	return best
}

// CalculatePath returns the cell centers from start to goal, both included.
func (pf *PathFinder) CalculatePath(start, goal cp.Vector) ([]cp.Vector, error) {
	s := pf.grid.WorldToCell(start)
	g := pf.grid.WorldToCell(goal)
	if !pf.grid.IsWalkable(s) {
		return nil, fmt.Errorf("%w: start (%.1f, %.1f)", ErrNotWalkable, start.X, start.Y)
	}
	if !pf.grid.IsWalkable(g) {
		return nil, fmt.Errorf("%w: goal (%.1f, %.1f)", ErrNotWalkable, goal.X, goal.Y)
	}

	cells := pf.astar(s, g)
	if cells == nil {
		return nil, &UnreachableError{Start: start, Goal: goal}
	}

	path := make([]cp.Vector, len(cells))
	for i, c := range cells {
		path[i] = pf.grid.CellToWorld(c)
	}
	return path, nil
}

// CalcPatrolPath joins grid paths between consecutive waypoints, including
// the last back to the first. Waypoints are snapped to walkable cells first.
func (pf *PathFinder) CalcPatrolPath(waypoints []cp.Vector) ([]cp.Vector, error) {
	if len(waypoints) == 0 {
		return nil, ErrNoWaypoints
	}
	points := make([]cp.Vector, len(waypoints))
	for i, w := range waypoints {
		points[i] = pf.ClosestPoint(w)
	}
	if len(points) == 1 {
		return []cp.Vector{points[0]}, nil
	}

	var out []cp.Vector
	for i := range points {
		seg, err := pf.CalculatePath(points[i], points[(i+1)%len(points)])
		if err != nil {
			return nil, fmt.Errorf("pathfind: patrol segment %d: %w", i, err)
		}
		if len(out) > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out, nil
}

func (pf *PathFinder) astar(start, goal grid.Cell) []grid.Cell {
	w := pf.grid.Width()
	n := w * pf.grid.Height()

	cameFrom := make([]int, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}

	startIdx := start.Row*w + start.Col
	goalIdx := goal.Row*w + goal.Col
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{cell: start, f: heuristic(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem).cell
		curIdx := cur.Row*w + cur.Col
		if curIdx == goalIdx {
			return reconstructPath(cameFrom, w, startIdx, goalIdx)
		}

		for _, nb := range pf.neighbourCells(cur) {
			idx := nb.Row*w + nb.Col
			tentative := gScore[curIdx] + 1
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				heap.Push(open, &openItem{cell: nb, f: tentative + heuristic(nb, goal)})
			}
		}
	}
	return nil
}

func reconstructPath(cameFrom []int, w, startIdx, goalIdx int) []grid.Cell {
	path := make([]grid.Cell, 0, 32)
	for cur := goalIdx; ; cur = cameFrom[cur] {
		path = append(path, grid.Cell{Col: cur % w, Row: cur / w})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// heuristic is the manhattan distance in cells.
func heuristic(a, b grid.Cell) float64 {
	return math.Abs(float64(a.Col-b.Col)) + math.Abs(float64(a.Row-b.Row))
}

type openItem struct {
	cell  grid.Cell
	f     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }

// Less orders by priority, then by world x, then y.
func (o openSet) Less(i, j int) bool {
	a, b := o[i], o[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.cell.Col != b.cell.Col {
		return a.cell.Col < b.cell.Col
	}
	return a.cell.Row < b.cell.Row
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
