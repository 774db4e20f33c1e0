package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/levels"
)

type Tool int

const (
	ToolWall Tool = iota
	ToolFloor
	ToolErase
	ToolPlayer
	ToolEnemy
	ToolWaypoint
)

var toolNames = []string{"Wall", "Floor", "Erase", "Player", "Enemy", "Waypoint"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "Unknown"
	}
	return toolNames[t]
}

// Painting tools apply while the button is held.
func (t Tool) paints() bool {
	return t == ToolWall || t == ToolFloor || t == ToolErase
}

func (t Tool) tile() byte {
	switch t {
	case ToolWall:
		return levels.TileWall
	case ToolFloor:
		return levels.TileFloor
	default:
		return levels.TileEmpty
	}
}

// session is the level being edited and the editor's selection on it.
type session struct {
	lvl      *levels.Level
	name     string
	selected int
	dirty    bool
}

func newSession(name string, lvl *levels.Level) *session {
	return &session{lvl: lvl, name: name, selected: -1}
}

func (s *session) pickRadius() float64 {
	if s.lvl.NodeSize > 0 {
		return s.lvl.NodeSize / 2
	}
	return levels.DefaultNodeSize / 2
}

// apply runs tool at world point p (left click). Points snap to cell centers.
func (s *session) apply(tool Tool, p cp.Vector) bool {
	col, row, ok := s.lvl.CellAt(p)
	if !ok {
		return false
	}
	center := s.lvl.CellCenter(col, row)

	changed := false
	switch tool {
	case ToolWall, ToolFloor, ToolErase:
		changed = s.lvl.SetTile(col, row, tool.tile())
	case ToolPlayer:
		if s.lvl.Player.Vector() != center {
			s.lvl.SetPlayer(center)
			changed = true
		}
	case ToolEnemy:
		if s.lvl.EnemyAt(center, s.pickRadius()) < 0 {
			s.selected = s.lvl.AddEnemy(center)
			changed = true
		}
	case ToolWaypoint:
		if i := s.lvl.EnemyAt(center, s.pickRadius()); i >= 0 && i != s.selected {
			s.selected = i
			return false
		}
		changed = s.lvl.AddWaypoint(s.selected, center)
	}
	s.dirty = s.dirty || changed
	return changed
}

// remove undoes tool at world point p (right click).
func (s *session) remove(tool Tool, p cp.Vector) bool {
	changed := false
	switch tool {
	case ToolWall, ToolFloor, ToolErase:
		if col, row, ok := s.lvl.CellAt(p); ok {
			changed = s.lvl.SetTile(col, row, levels.TileEmpty)
		}
	case ToolEnemy:
		i := s.lvl.EnemyAt(p, s.pickRadius())
		changed = s.lvl.RemoveEnemyAt(p, s.pickRadius())
		if changed {
			switch {
			case i == s.selected:
				s.selected = -1
			case i < s.selected:
				s.selected--
			}
		}
	case ToolWaypoint:
		changed = s.lvl.RemoveLastWaypoint(s.selected)
	}
	s.dirty = s.dirty || changed
	return changed
}

func (s *session) selectedEnemy() (cp.Vector, bool) {
	if s.selected < 0 || s.selected >= len(s.lvl.Enemies) {
		return cp.Vector{}, false
	}
	return s.lvl.Enemies[s.selected].Vector(), true
}
