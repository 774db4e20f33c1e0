package sim

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/triggered/levels"
	"github.com/milk9111/triggered/prefabs"
)

// Variables visible to objective conditions.
var objectiveVars = []string{
	"enemies_alive",
	"enemies_total",
	"player_health",
	"player_ammo",
	"elapsed",
	"ticks",
}

// Objective is a level goal backed by a compiled tengo program that assigns "done".
type Objective struct {
	Text string
	Done bool

	compiled *tengo.Compiled
}

// ObjectiveState is the snapshot objectives are evaluated against.
type ObjectiveState struct {
	EnemiesAlive int
	EnemiesTotal int
	PlayerHealth float64
	PlayerAmmo   int
	Elapsed      float64
	Ticks        int
}

func (s ObjectiveState) values() map[string]interface{} {
	return map[string]interface{}{
		"enemies_alive": s.EnemiesAlive,
		"enemies_total": s.EnemiesTotal,
		"player_health": s.PlayerHealth,
		"player_ammo":   s.PlayerAmmo,
		"elapsed":       s.Elapsed,
		"ticks":         s.Ticks,
	}
}

func compileObjectives(objs []levels.Objective) ([]*Objective, error) {
	out := make([]*Objective, 0, len(objs))
	for i, o := range objs {
		src, err := objectiveSource(o)
		if err != nil {
			return nil, fmt.Errorf("sim: objective %d %q: %w", i, o.Text, err)
		}
		script := tengo.NewScript(src)
		zero := ObjectiveState{}.values()
		for _, name := range objectiveVars {
			if err := script.Add(name, zero[name]); err != nil {
				return nil, fmt.Errorf("sim: objective %q: add %s: %w", o.Text, name, err)
			}
		}
		compiled, err := script.Compile()
		if err != nil {
			return nil, fmt.Errorf("sim: compile objective %q: %w", o.Text, err)
		}
		out = append(out, &Objective{Text: o.Text, compiled: compiled})
	}
	return out, nil
}

func objectiveSource(o levels.Objective) ([]byte, error) {
	if o.Script != "" {
		return prefabs.LoadScript(o.Script)
	}
	cond := o.Condition
	if cond == "" {
		cond = levels.DefaultCondition
	}
	return []byte("done := (" + cond + ")"), nil
}

// Evaluate reruns the objective against state.
func (o *Objective) Evaluate(state ObjectiveState) error {
	for name, v := range state.values() {
		if err := o.compiled.Set(name, v); err != nil {
			return fmt.Errorf("sim: objective %q: set %s: %w", o.Text, name, err)
		}
	}
	if err := o.compiled.Run(); err != nil {
		return fmt.Errorf("sim: objective %q: %w", o.Text, err)
	}
	if !o.compiled.IsDefined("done") {
		return fmt.Errorf("sim: objective %q does not assign done", o.Text)
	}
	o.Done = o.compiled.Get("done").Bool()
	return nil
}
