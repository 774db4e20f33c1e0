package component

import "github.com/jakecoffman/cp"

// Weapon spawns projectiles from a muzzle offset in the owner's local frame.
type Weapon struct {
	Muzzle cp.Vector
	// Frequency is the number of ticks between shots. Zero fires every tick.
	Frequency int
	// Ammo counts remaining shots. Negative means unlimited.
	Ammo int

	counter int
}

// MuzzlePosition rotates the muzzle offset by angle around pos.
func (w *Weapon) MuzzlePosition(pos cp.Vector, angle float64) cp.Vector {
	return pos.Add(w.Muzzle.Rotate(cp.ForAngle(angle)))
}

// Tick advances the cadence counter and reports whether a shot is due.
// The counter restarts after each due shot.
func (w *Weapon) Tick() bool {
	w.counter++
	if w.counter < w.Frequency {
		return false
	}
	w.counter = 0
	return true
}

// ResetCadence restarts the cadence counter.
func (w *Weapon) ResetCadence() {
	w.counter = 0
}

func (w *Weapon) HasAmmo() bool {
	return w.Ammo != 0
}

// UseAmmo consumes one shot and reports whether one was available.
func (w *Weapon) UseAmmo() bool {
	if w.Ammo == 0 {
		return false
	}
	if w.Ammo > 0 {
		w.Ammo--
	}
	return true
}
