// Package levels reads, writes and edits level files.
package levels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

const DefaultNodeSize = 100

// Default objective when a level names none.
const DefaultCondition = "enemies_alive == 0"

var (
	ErrNoMap         = errors.New("map is empty")
	ErrRaggedMap     = errors.New("map rows have different lengths")
	ErrPlayerOutside = errors.New("player is outside the map")
	ErrWaypoints     = errors.New("more waypoint lists than enemies")
	ErrPatrolMode    = errors.New("unknown patrol mode")
)

// PatrolMode controls how an enemy's waypoint list is walked.
type PatrolMode string

const (
	// PatrolPingPong walks the list forward then back, A B C B A B ...
	PatrolPingPong PatrolMode = "pingpong"
	// PatrolLoop walks A B C A B C ...
	PatrolLoop PatrolMode = "loop"
)

// Point is a world position stored as [x, y].
type Point [2]float64

func (p Point) Vector() cp.Vector {
	return cp.Vector{X: p[0], Y: p[1]}
}

func PointOf(v cp.Vector) Point {
	return Point{v.X, v.Y}
}

type Objective struct {
	Text string `json:"text"`
	// Condition is a boolean tengo expression.
	Condition string `json:"condition,omitempty"`
	// Script names a tengo file under prefabs/scripts that assigns "done".
	Script string `json:"script,omitempty"`
}

type Level struct {
	Name       string      `json:"name"`
	NodeSize   float64     `json:"node_size,omitempty"`
	Map        []string    `json:"map"`
	Player     Point       `json:"player"`
	Enemies    []Point     `json:"enemies"`
	Waypoints  [][]Point   `json:"waypoints"`
	Patrol     PatrolMode  `json:"patrol,omitempty"`
	Pathed     bool        `json:"pathed,omitempty"`
	Objectives []Objective `json:"objectives"`
}

func (l *Level) normalize() {
	if l.NodeSize <= 0 {
		l.NodeSize = DefaultNodeSize
	}
	if l.Patrol == "" {
		l.Patrol = PatrolPingPong
	}
	for len(l.Waypoints) < len(l.Enemies) {
		l.Waypoints = append(l.Waypoints, nil)
	}
}

func (l *Level) Width() int {
	if len(l.Map) == 0 {
		return 0
	}
	return len(l.Map[0])
}

func (l *Level) Height() int {
	return len(l.Map)
}

// Size returns the map extent in world units.
func (l *Level) Size() (float64, float64) {
	return float64(l.Width()) * l.nodeSize(), float64(l.Height()) * l.nodeSize()
}

func (l *Level) nodeSize() float64 {
	if l.NodeSize <= 0 {
		return DefaultNodeSize
	}
	return l.NodeSize
}

func (l *Level) Validate() error {
	if len(l.Map) == 0 || len(l.Map[0]) == 0 {
		return ErrNoMap
	}
	for i, row := range l.Map {
		if len(row) != len(l.Map[0]) {
			return fmt.Errorf("%w: row %d", ErrRaggedMap, i)
		}
	}
	w, h := l.Size()
	if l.Player[0] < 0 || l.Player[1] < 0 || l.Player[0] >= w || l.Player[1] >= h {
		return fmt.Errorf("%w: (%.0f, %.0f)", ErrPlayerOutside, l.Player[0], l.Player[1])
	}
	if len(l.Waypoints) > len(l.Enemies) {
		return fmt.Errorf("%w: %d lists for %d enemies", ErrWaypoints, len(l.Waypoints), len(l.Enemies))
	}
	switch l.Patrol {
	case "", PatrolPingPong, PatrolLoop:
	default:
		return fmt.Errorf("%w: %q", ErrPatrolMode, l.Patrol)
	}
	return nil
}

// PatrolRoute returns the cyclic waypoint list of enemy i. An enemy without
// waypoints guards its spawn point.
func (l *Level) PatrolRoute(i int) []cp.Vector {
	var pts []Point
	if i < len(l.Waypoints) {
		pts = l.Waypoints[i]
	}
	if len(pts) == 0 {
		return []cp.Vector{l.Enemies[i].Vector()}
	}

	out := make([]cp.Vector, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.Vector())
	}
	if l.Patrol == PatrolLoop {
		return out
	}
	for j := len(pts) - 2; j >= 1; j-- {
		out = append(out, pts[j].Vector())
	}
	return out
}

// ObjectiveList returns the level objectives, or the default one when none are set.
func (l *Level) ObjectiveList() []Objective {
	if len(l.Objectives) == 0 {
		return []Objective{{Text: "Kill all enemies", Condition: DefaultCondition}}
	}
	return l.Objectives
}

// String renders the map rows for logs and the clipboard.
func (l *Level) String() string {
	return strings.Join(l.Map, "\n")
}
