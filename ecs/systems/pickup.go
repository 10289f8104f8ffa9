package systems

import (
	"fmt"
	"math"

	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
)

// PickupSystem bobs uncollected pickups for rendering and converts
// gate-forwarded ball contacts into score.
type PickupSystem struct{}

// NewPickupSystem creates a PickupSystem.
func NewPickupSystem() *PickupSystem {
	return &PickupSystem{}
}

// Update floats pickups and collects the ones a ball touched.
func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	pickups := w.Pickups()
	if pickups == nil || pickups.Len() == 0 {
		return
	}

	now := pw.Now()
	for _, id := range pickups.Entities() {
		pk, ok := pickups.Get(id).(*components.Pickup)
		if !ok || pk == nil || pk.Collected {
			continue
		}
		tr := w.GetTransform(w.EntityByID(id))
		if tr == nil {
			continue
		}
		speed := pk.BobSpeed
		if speed == 0 {
			speed = 2.0
		}
		// The sensor shape stays at BaseY; only the drawn position bobs.
		tr.Y = pk.BaseY + math.Sin(now*speed+pk.BobPhase)*pk.BobAmplitude
	}

	var collected []ecs.Entity
	for _, evt := range w.Events().Items() {
		if evt.Type != ecs.EventContact {
			continue
		}
		c, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		pk, ok := pickups.Get(c.Entity.ID).(*components.Pickup)
		if !ok || pk == nil || pk.Collected {
			continue
		}
		pk.Collected = true
		collected = append(collected, c.Entity)

		scores := w.Scores()
		for _, sid := range scores.Entities() {
			sc, ok := scores.Get(sid).(*components.ScoreCounter)
			if !ok || sc == nil {
				continue
			}
			sc.Collected += pk.Value
			sc.RenderedText = fmt.Sprintf("%d / %d", sc.Collected, sc.Total)
			w.Events().Push(ecs.Event{Type: ecs.EventScore, Data: ecs.ScoreEvent{
				Entity:    c.Entity,
				Value:     pk.Value,
				Collected: sc.Collected,
				Total:     sc.Total,
			}})
		}
	}

	for _, e := range collected {
		if body := w.GetPhysicsBody(e); body != nil {
			pw.RemoveBody(e, body)
		}
		w.DestroyEntity(e)
	}
}
