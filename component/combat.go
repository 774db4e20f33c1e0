package component

import "github.com/jakecoffman/cp"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventFire  CombatEventType = "fire"
	EventHit   CombatEventType = "hit"
	EventDeath CombatEventType = "death"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type     CombatEventType
	Attacker Faction
	Target   Faction
	Damage   float64
	Pos      cp.Vector
	Tick     int
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans events out to its handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		h(evt)
	}
}
