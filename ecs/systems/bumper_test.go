package systems

import (
	"math"
	"testing"

	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
	"github.com/tannerb/bouncelab/gate"
)

func newBumperWorld(t *testing.T) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(400, 400, 0, 0.9)
	w.SetPhysicsWorld(pw)

	bumper := w.CreateEntity()
	w.Transforms().Set(bumper.ID, &components.Transform{X: 200, Y: 200})
	w.Bumpers().Set(bumper.ID, &components.Bumper{Radius: 30, Force: 100})

	ball := w.CreateEntity()
	tr := &components.Transform{X: 200, Y: 160}
	w.Transforms().Set(ball.ID, tr)
	ballComp := &components.Ball{Radius: 10, Elasticity: 0.9, Friction: 0.4}
	w.Balls().Set(ball.ID, ballComp)
	body := pw.EnsureBallBody(ball, tr, nil, ballComp, nil)
	w.PhysicsBodies().Set(ball.ID, body)

	return w, bumper, ball
}

func TestBumperImpulseOnForwardedContact(t *testing.T) {
	w, bumper, ball := newBumperWorld(t)
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{
		Entity:      bumper,
		Counterpart: ball,
		Tag:         "Ball",
		Strength:    120,
		Point:       gate.Vec3{X: 200, Y: 170},
	}})

	NewBumperSystem().Update(w)

	body := w.GetPhysicsBody(ball)
	v := body.Body.Velocity()
	// The ball sits above the bumper center, so the push is straight up.
	if v.Y >= 0 {
		t.Fatalf("expected upward push, got velocity %+v", v)
	}
	if math.Abs(v.X) > 1e-9 {
		t.Fatalf("expected no sideways push, got velocity %+v", v)
	}

	bmp, _ := w.Bumpers().Get(bumper.ID).(*components.Bumper)
	if bmp.Flash == 0 {
		t.Fatal("bumper should flash after firing")
	}
}

func TestBumperIgnoresForeignContacts(t *testing.T) {
	w, _, ball := newBumperWorld(t)
	// Contact owned by the ball, not the bumper.
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{
		Entity:      ball,
		Counterpart: ecs.Entity{},
		Tag:         "Wall",
		Strength:    80,
	}})

	NewBumperSystem().Update(w)

	body := w.GetPhysicsBody(ball)
	v := body.Body.Velocity()
	if v.X != 0 || v.Y != 0 {
		t.Fatalf("no impulse expected, got velocity %+v", v)
	}
}

func TestBumperFlashDecay(t *testing.T) {
	w, bumper, _ := newBumperWorld(t)
	bmp, _ := w.Bumpers().Get(bumper.ID).(*components.Bumper)
	bmp.Flash = 3

	sys := NewBumperSystem()
	sys.Update(w)
	sys.Update(w)
	if bmp.Flash != 1 {
		t.Fatalf("expected flash to decay to 1, got %d", bmp.Flash)
	}
	sys.Update(w)
	sys.Update(w)
	if bmp.Flash != 0 {
		t.Fatalf("flash should bottom out at 0, got %d", bmp.Flash)
	}
}
