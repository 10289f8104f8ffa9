package systems

import (
	"github.com/tannerb/bouncelab/common"
	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
)

// PhysicsSystem creates missing bodies, registers tags and gates with
// the physics world, steps the simulation, and mirrors positions and
// velocities back into components.
type PhysicsSystem struct {
	StepDT float64
}

// NewPhysicsSystem creates a PhysicsSystem with the fixed step.
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{StepDT: common.StepDT}
}

// Update steps physics and syncs transforms/velocities.
func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	trs := w.Transforms()
	vels := w.Velocities()
	bodies := w.PhysicsBodies()

	for _, id := range w.Balls().Entities() {
		ball, ok := w.Balls().Get(id).(*components.Ball)
		if !ok || ball == nil {
			continue
		}
		tr, ok := trs.Get(id).(*components.Transform)
		if !ok || tr == nil {
			continue
		}
		var vel *components.Velocity
		if vv := vels.Get(id); vv != nil {
			vel, _ = vv.(*components.Velocity)
		}
		var body *components.PhysicsBody
		if bv := bodies.Get(id); bv != nil {
			body, _ = bv.(*components.PhysicsBody)
		}
		body = pw.EnsureBallBody(w.EntityByID(id), tr, vel, ball, body)
		if body != nil {
			bodies.Set(id, body)
		}
	}

	for _, id := range w.Paddles().Entities() {
		paddle, ok := w.Paddles().Get(id).(*components.Paddle)
		if !ok || paddle == nil {
			continue
		}
		tr, ok := trs.Get(id).(*components.Transform)
		if !ok || tr == nil {
			continue
		}
		var body *components.PhysicsBody
		if bv := bodies.Get(id); bv != nil {
			body, _ = bv.(*components.PhysicsBody)
		}
		body = pw.EnsurePaddleBody(w.EntityByID(id), tr, paddle, body)
		if body != nil {
			bodies.Set(id, body)
		}
	}

	for _, id := range w.Tags().Entities() {
		if tag, ok := w.Tags().Get(id).(*components.Tag); ok && tag != nil {
			pw.SetEntityTag(w.EntityByID(id), tag.Name)
		}
	}
	for _, id := range w.ContactGates().Entities() {
		if cg, ok := w.ContactGates().Get(id).(*components.ContactGate); ok && cg != nil {
			pw.SetEntityGate(w.EntityByID(id), cg.Gate, cg.Stats)
		}
	}

	if s.StepDT <= 0 {
		s.StepDT = common.StepDT
	}
	pw.Step(s.StepDT)

	for _, id := range bodies.Entities() {
		body, ok := bodies.Get(id).(*components.PhysicsBody)
		if !ok || body == nil || body.Body == nil {
			continue
		}
		tr, ok := trs.Get(id).(*components.Transform)
		if !ok || tr == nil {
			continue
		}
		pos := body.Body.Position()
		tr.X = pos.X
		tr.Y = pos.Y
		tr.Angle = body.Body.Angle()

		if vv := vels.Get(id); vv != nil {
			if vel, ok := vv.(*components.Velocity); ok && vel != nil {
				v := body.Body.Velocity()
				vel.VX = v.X
				vel.VY = v.Y
			}
		}
	}
}
