package systems

import (
	"github.com/jakecoffman/cp"
	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
)

const bumperFlashFrames = 8

// BumperSystem applies a repulsion impulse to balls whose contact with
// a bumper made it through the bumper's gate. The "don't double-fire"
// window is entirely the gate's cooldown mode; this system only reacts.
type BumperSystem struct{}

// NewBumperSystem creates a BumperSystem.
func NewBumperSystem() *BumperSystem {
	return &BumperSystem{}
}

// Update decays flash timers and handles this frame's contacts.
func (s *BumperSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	bumpers := w.Bumpers()
	for _, id := range bumpers.Entities() {
		if b, ok := bumpers.Get(id).(*components.Bumper); ok && b != nil && b.Flash > 0 {
			b.Flash--
		}
	}

	for _, evt := range w.Events().Items() {
		if evt.Type != ecs.EventContact {
			continue
		}
		c, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		bmp, ok := bumpers.Get(c.Entity.ID).(*components.Bumper)
		if !ok || bmp == nil {
			continue
		}
		if !c.Counterpart.Valid() {
			continue
		}
		body := w.GetPhysicsBody(c.Counterpart)
		if body == nil || body.Body == nil {
			continue
		}
		btr := w.GetTransform(c.Entity)
		if btr == nil {
			continue
		}

		pos := body.Body.Position()
		dir := pos.Sub(cp.Vector{X: btr.X, Y: btr.Y})
		if dir.Length() == 0 {
			dir = cp.Vector{X: 0, Y: -1}
		} else {
			dir = dir.Normalize()
		}
		body.Body.ApplyImpulseAtWorldPoint(dir.Mult(bmp.Force), pos)
		bmp.Flash = bumperFlashFrames
	}
}
