package sim

import (
	"errors"
	"fmt"

	"github.com/milk9111/triggered/levels"
	"github.com/milk9111/triggered/prefabs"
)

var (
	ErrNoLevels     = errors.New("sim: no levels")
	ErrUnknownLevel = errors.New("sim: unknown level")
)

// Opener resolves a level name to its data.
type Opener func(name string) (*levels.Level, error)

// Manager walks an ordered list of levels.
type Manager struct {
	names     []string
	index     int
	specs     prefabs.Specs
	open      Opener
	current   *Level
	completed bool
}

// NewManager uses levels.Open when open is nil.
func NewManager(names []string, specs prefabs.Specs, open Opener) (*Manager, error) {
	if len(names) == 0 {
		return nil, ErrNoLevels
	}
	if open == nil {
		open = levels.Open
	}
	n := make([]string, len(names))
	copy(n, names)
	return &Manager{names: n, specs: specs, open: open}, nil
}

func (m *Manager) Names() []string {
	return m.names
}

func (m *Manager) Index() int {
	return m.index
}

func (m *Manager) CurrentName() string {
	return m.names[m.index]
}

// Current is the last loaded level, or nil.
func (m *Manager) Current() *Level {
	return m.current
}

// Completed reports whether Next was called on the last level.
func (m *Manager) Completed() bool {
	return m.completed
}

// SetSpecs replaces the tuning used by later loads.
func (m *Manager) SetSpecs(specs prefabs.Specs) {
	m.specs = specs
}

// Load (re)builds the current level from its source.
func (m *Manager) Load() (*Level, error) {
	name := m.CurrentName()
	src, err := m.open(name)
	if err != nil {
		return nil, fmt.Errorf("sim: open %s: %w", name, err)
	}
	lvl, err := Load(src, m.specs)
	if err != nil {
		return nil, err
	}
	m.current = lvl
	return lvl, nil
}

// Next loads the following level. On the last level it marks the run
// completed and returns nil without error.
func (m *Manager) Next() (*Level, error) {
	m.completed = m.index == len(m.names)-1
	if m.completed {
		return nil, nil
	}
	m.index++
	return m.Load()
}

// Set selects a level by name without loading it.
func (m *Manager) Set(name string) error {
	for i, n := range m.names {
		if n == name {
			m.index = i
			m.completed = false
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownLevel, name)
}
