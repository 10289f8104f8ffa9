package systems

import (
	"log"

	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/script"
)

// ContactGateSystem turns gate-forwarded collisions buffered by the
// physics world into world events and runs scripted listeners.
type ContactGateSystem struct {
	Scripts *script.Library
}

// NewContactGateSystem creates a ContactGateSystem.
func NewContactGateSystem(scripts *script.Library) *ContactGateSystem {
	return &ContactGateSystem{Scripts: scripts}
}

// Update drains accepted contacts into the event queue.
func (s *ContactGateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	for _, c := range pw.DrainContacts() {
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{
			Entity:      c.Entity,
			Counterpart: c.Counterpart,
			Tag:         c.Tag,
			Strength:    c.Strength,
			Point:       c.Point,
		}})

		if s == nil || s.Scripts == nil {
			continue
		}
		cg := w.GetContactGate(c.Entity)
		if cg == nil || cg.Script == "" {
			continue
		}
		var count int
		if cg.Stats != nil {
			_, _, _, count = cg.Stats.Snapshot()
		}
		msg, err := s.Scripts.OnContact(cg.Script, c.Strength, c.Tag, count)
		if err != nil {
			log.Printf("ContactGateSystem: entity=%d script %s error: %v", c.Entity.ID, cg.Script, err)
			continue
		}
		if msg != "" {
			log.Printf("ContactGateSystem: %s", msg)
		}
	}
}
