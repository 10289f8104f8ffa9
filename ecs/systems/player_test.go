package systems

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
	"github.com/tannerb/bouncelab/gate"
)

func newPaddleWorld(t *testing.T, x float64) (*ecs.World, ecs.Entity, *components.PhysicsBody) {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(400, 400, 0, 0.9)
	w.SetPhysicsWorld(pw)

	paddle := w.CreateEntity()
	tr := &components.Transform{X: x, Y: 350}
	w.Transforms().Set(paddle.ID, tr)
	pd := &components.Paddle{Width: 80, Height: 16, Speed: 300, MinX: 40, MaxX: 360}
	w.Paddles().Set(paddle.ID, pd)
	w.PlayerControllers().Set(paddle.ID, &components.PlayerController{StickRate: 0.5})

	body := pw.EnsurePaddleBody(paddle, tr, pd, nil)
	w.PhysicsBodies().Set(paddle.ID, body)
	return w, paddle, body
}

func TestPaddleVelocityFromInput(t *testing.T) {
	w, paddle, body := newPaddleWorld(t, 200)
	w.Inputs().Set(paddle.ID, &components.InputState{MoveX: 1})

	NewPlayerSystem().Update(w)

	if v := body.Body.Velocity(); v.X != 300 || v.Y != 0 {
		t.Fatalf("expected velocity (300, 0), got %+v", v)
	}
}

func TestPaddleStopsAtBoundary(t *testing.T) {
	w, paddle, body := newPaddleWorld(t, 360)
	w.Inputs().Set(paddle.ID, &components.InputState{MoveX: 1})

	NewPlayerSystem().Update(w)

	if v := body.Body.Velocity(); v.X != 0 {
		t.Fatalf("paddle at MaxX should not keep moving right, got %+v", v)
	}
}

func TestPaddleClampedBackInside(t *testing.T) {
	w, paddle, body := newPaddleWorld(t, 200)
	w.Inputs().Set(paddle.ID, &components.InputState{})
	body.Body.SetPosition(cp.Vector{X: 390, Y: 350})

	NewPlayerSystem().Update(w)

	if pos := body.Body.Position(); pos.X != 360 {
		t.Fatalf("expected paddle clamped to 360, got %v", pos.X)
	}
}

func TestStuckBallsRideThePaddle(t *testing.T) {
	w, paddle, body := newPaddleWorld(t, 200)
	w.Inputs().Set(paddle.ID, &components.InputState{MoveX: 1})

	g := gate.New(gate.Config{WatchedTag: "Ball", Timing: gate.TimingInitialContact})
	w.ContactGates().Set(paddle.ID, &components.ContactGate{Gate: g, Stats: &gate.Stats{}})

	pw := w.PhysicsWorld()
	ball := w.CreateEntity()
	btr := &components.Transform{X: 200, Y: 330}
	w.Transforms().Set(ball.ID, btr)
	ballComp := &components.Ball{Radius: 10, Elasticity: 0.5, Friction: 0.4}
	w.Balls().Set(ball.ID, ballComp)
	ballBody := pw.EnsureBallBody(ball, btr, nil, ballComp, nil)
	w.PhysicsBodies().Set(ball.ID, ballBody)

	// Mark the ball as resting on the paddle the same way the physics
	// layer would: through the paddle gate's contact tracking.
	g.Notify(gate.Notification{Tag: "Ball", Counterpart: ball})
	if !g.IsInContact(ball) {
		t.Fatal("gate should track the ball after a forwarded contact")
	}

	NewPlayerSystem().Update(w)

	paddleVX := body.Body.Velocity().X
	got := ballBody.Body.Velocity().X
	want := 0.5 * paddleVX // lerp from rest at the configured stick rate
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected stuck ball VX %v, got %v", want, got)
	}
}

func TestUntrackedBallsUnaffected(t *testing.T) {
	w, paddle, _ := newPaddleWorld(t, 200)
	w.Inputs().Set(paddle.ID, &components.InputState{MoveX: 1})

	g := gate.New(gate.Config{WatchedTag: "Ball", Timing: gate.TimingInitialContact})
	w.ContactGates().Set(paddle.ID, &components.ContactGate{Gate: g, Stats: &gate.Stats{}})

	pw := w.PhysicsWorld()
	ball := w.CreateEntity()
	btr := &components.Transform{X: 100, Y: 100}
	w.Transforms().Set(ball.ID, btr)
	ballComp := &components.Ball{Radius: 10}
	w.Balls().Set(ball.ID, ballComp)
	ballBody := pw.EnsureBallBody(ball, btr, nil, ballComp, nil)
	w.PhysicsBodies().Set(ball.ID, ballBody)

	NewPlayerSystem().Update(w)

	if v := ballBody.Body.Velocity(); v.X != 0 {
		t.Fatalf("free ball should not be dragged, got %+v", v)
	}
}
