package levels

import (
	"strings"

	"github.com/jakecoffman/cp"
)

// Tile tags used in map rows.
const (
	TileWall  byte = '#'
	TileFloor byte = ' '
	TileEmpty byte = '.'
)

// New creates a floor-filled level of w x h cells enclosed by walls, with
// the player in the first floor cell.
func New(name string, w, h int) *Level {
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	rows := make([]string, h)
	for y := range rows {
		if y == 0 || y == h-1 {
			rows[y] = strings.Repeat(string(TileWall), w)
			continue
		}
		rows[y] = string(TileWall) + strings.Repeat(string(TileFloor), w-2) + string(TileWall)
	}
	half := DefaultNodeSize / 2.0
	return &Level{
		Name:     name,
		NodeSize: DefaultNodeSize,
		Map:      rows,
		Player:   Point{DefaultNodeSize + half, DefaultNodeSize + half},
		Patrol:   PatrolPingPong,
	}
}

// CellAt returns the cell containing world point p and whether it is inside the map.
func (l *Level) CellAt(p cp.Vector) (int, int, bool) {
	ns := l.nodeSize()
	if p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	col, row := int(p.X/ns), int(p.Y/ns)
	return col, row, row < l.Height() && col < l.Width()
}

// CellCenter returns the world center of cell (col, row).
func (l *Level) CellCenter(col, row int) cp.Vector {
	ns := l.nodeSize()
	return cp.Vector{X: (float64(col) + 0.5) * ns, Y: (float64(row) + 0.5) * ns}
}

func (l *Level) Tile(col, row int) byte {
	if row < 0 || row >= l.Height() || col < 0 || col >= l.Width() {
		return TileWall
	}
	return l.Map[row][col]
}

// SetTile replaces one cell. It reports whether the map changed.
func (l *Level) SetTile(col, row int, tile byte) bool {
	if row < 0 || row >= l.Height() || col < 0 || col >= l.Width() {
		return false
	}
	if l.Map[row][col] == tile {
		return false
	}
	b := []byte(l.Map[row])
	b[col] = tile
	l.Map[row] = string(b)
	return true
}

// Resize crops or pads the map to w x h. New cells are empty.
func (l *Level) Resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var row string
		if y < len(l.Map) {
			row = l.Map[y]
		}
		if len(row) > w {
			row = row[:w]
		}
		rows[y] = row + strings.Repeat(string(TileEmpty), w-len(row))
	}
	l.Map = rows
}

func (l *Level) SetPlayer(p cp.Vector) {
	l.Player = PointOf(p)
}

// AddEnemy appends an enemy with no waypoints and returns its index.
func (l *Level) AddEnemy(p cp.Vector) int {
	l.normalize()
	l.Enemies = append(l.Enemies, PointOf(p))
	l.Waypoints = append(l.Waypoints, nil)
	return len(l.Enemies) - 1
}

// EnemyAt returns the index of the first enemy within radius of p, or -1.
func (l *Level) EnemyAt(p cp.Vector, radius float64) int {
	for i, e := range l.Enemies {
		if e.Vector().DistanceSq(p) <= radius*radius {
			return i
		}
	}
	return -1
}

// RemoveEnemyAt deletes the enemy under p together with its waypoints.
func (l *Level) RemoveEnemyAt(p cp.Vector, radius float64) bool {
	i := l.EnemyAt(p, radius)
	if i < 0 {
		return false
	}
	l.Enemies = append(l.Enemies[:i], l.Enemies[i+1:]...)
	if i < len(l.Waypoints) {
		l.Waypoints = append(l.Waypoints[:i], l.Waypoints[i+1:]...)
	}
	return true
}

// AddWaypoint appends p to enemy i's waypoints.
func (l *Level) AddWaypoint(i int, p cp.Vector) bool {
	if i < 0 || i >= len(l.Enemies) {
		return false
	}
	l.normalize()
	l.Waypoints[i] = append(l.Waypoints[i], PointOf(p))
	return true
}

func (l *Level) RemoveLastWaypoint(i int) bool {
	if i < 0 || i >= len(l.Waypoints) || len(l.Waypoints[i]) == 0 {
		return false
	}
	l.Waypoints[i] = l.Waypoints[i][:len(l.Waypoints[i])-1]
	return true
}

// SetObjectives parses one objective per line as "text | condition".
// A line without a condition gets the default one.
func (l *Level) SetObjectives(text string) {
	var out []Objective
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		obj := Objective{Text: line}
		if name, cond, ok := strings.Cut(line, "|"); ok {
			obj.Text = strings.TrimSpace(name)
			cond = strings.TrimSpace(cond)
			if script, ok := strings.CutPrefix(cond, "script:"); ok {
				obj.Script = strings.TrimSpace(script)
			} else {
				obj.Condition = cond
			}
		}
		out = append(out, obj)
	}
	l.Objectives = out
}

// ObjectivesText is the inverse of SetObjectives.
func (l *Level) ObjectivesText() string {
	lines := make([]string, 0, len(l.Objectives))
	for _, o := range l.Objectives {
		switch {
		case o.Script != "":
			lines = append(lines, o.Text+" | script:"+o.Script)
		case o.Condition != "":
			lines = append(lines, o.Text+" | "+o.Condition)
		default:
			lines = append(lines, o.Text)
		}
	}
	return strings.Join(lines, "\n")
}
