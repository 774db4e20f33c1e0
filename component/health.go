package component

// Health is shared by every agent that can take damage. Current may go
// negative; an agent is dead once Current <= 0.
type Health struct {
	Max     float64
	Current float64

	OnDamage func(h *Health, evt CombatEvent)
	OnDeath  func(h *Health, evt CombatEvent)

	deathReported bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

func (h *Health) Dead() bool {
	return h == nil || h.Current <= 0
}

// ApplyDamage subtracts evt.Damage. It returns true when the damage was the
// killing blow. Damage to a dead agent is ignored.
func (h *Health) ApplyDamage(evt CombatEvent) bool {
	if h.Dead() || evt.Damage <= 0 {
		return false
	}
	h.Current -= evt.Damage
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current > 0 || h.deathReported {
		return false
	}
	h.deathReported = true
	if h.OnDeath != nil {
		evt.Type = EventDeath
		h.OnDeath(h, evt)
	}
	return true
}

// Fraction is the remaining health in [0, 1] for bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	if h.Current >= h.Max {
		return 1
	}
	return h.Current / h.Max
}
