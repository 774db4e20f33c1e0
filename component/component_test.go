package component

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthOvershootKills(t *testing.T) {
	cases := []struct {
		name   string
		health float64
		damage float64
		dead   bool
	}{
		{"overshoot", 3, 5, true},
		{"exact", 5, 5, true},
		{"survives", 10, 5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHealth(c.health)
			killed := h.ApplyDamage(CombatEvent{Type: EventHit, Damage: c.damage})
			assert.Equal(t, c.dead, killed)
			assert.Equal(t, c.dead, h.Dead())
			assert.Equal(t, c.health-c.damage, h.Current)
		})
	}
}

func TestHealthCallbacks(t *testing.T) {
	h := NewHealth(10)
	var damaged, died int
	h.OnDamage = func(*Health, CombatEvent) { damaged++ }
	h.OnDeath = func(_ *Health, evt CombatEvent) {
		died++
		assert.Equal(t, EventDeath, evt.Type)
	}

	h.ApplyDamage(CombatEvent{Damage: 6})
	h.ApplyDamage(CombatEvent{Damage: 6})
	h.ApplyDamage(CombatEvent{Damage: 6})

	assert.Equal(t, 2, damaged)
	assert.Equal(t, 1, died)
	assert.Equal(t, 0.0, h.Fraction())
	assert.True(t, (*Health)(nil).Dead())
}

func TestWeaponCadenceAndAmmo(t *testing.T) {
	w := &Weapon{Frequency: 3, Ammo: 2}
	var fired []bool
	for i := 0; i < 6; i++ {
		fired = append(fired, w.Tick())
	}
	assert.Equal(t, []bool{false, false, true, false, false, true}, fired)

	require.True(t, w.UseAmmo())
	require.True(t, w.UseAmmo())
	assert.False(t, w.UseAmmo())
	assert.False(t, w.HasAmmo())

	unlimited := &Weapon{Ammo: -1}
	assert.True(t, unlimited.Tick())
	assert.True(t, unlimited.UseAmmo())
	assert.Equal(t, -1, unlimited.Ammo)
}

func TestMuzzlePositionRotates(t *testing.T) {
	w := &Weapon{Muzzle: cp.Vector{X: 30, Y: 0}}
	p := w.MuzzlePosition(cp.Vector{X: 100, Y: 100}, math.Pi/2)
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 130, p.Y, 1e-9)
}

func TestEmitter(t *testing.T) {
	var e CombatEventEmitter
	var got []CombatEventType
	e.Subscribe(func(evt CombatEvent) { got = append(got, evt.Type) })
	e.Subscribe(nil)
	e.Emit(CombatEvent{Type: EventFire})
	e.Emit(CombatEvent{Type: EventHit})
	assert.Equal(t, []CombatEventType{EventFire, EventHit}, got)
	assert.Equal(t, "enemy", FactionEnemy.String())
}
