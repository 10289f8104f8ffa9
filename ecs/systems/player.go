package systems

import (
	"github.com/jakecoffman/cp"
	"github.com/tannerb/bouncelab/common"
	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
)

// PlayerSystem drives the kinematic paddle from input and matches
// resting balls' horizontal velocity to the paddle's so they ride
// along instead of sliding off. Which balls count as "resting" comes
// from the paddle gate's contact tracking: a ball is stuck while it is
// in the gate's contact set, and the physics world clears it on
// separation.
type PlayerSystem struct{}

// NewPlayerSystem creates a PlayerSystem.
func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

// Update applies input to paddles and velocity-matches stuck balls.
func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	players := w.PlayerControllers()
	for _, id := range players.Entities() {
		ctrl, ok := players.Get(id).(*components.PlayerController)
		if !ok || ctrl == nil {
			continue
		}
		ent := w.EntityByID(id)

		paddle, ok := w.Paddles().Get(id).(*components.Paddle)
		if !ok || paddle == nil {
			continue
		}
		body := w.GetPhysicsBody(ent)
		if body == nil || body.Body == nil {
			continue
		}

		var moveX float64
		if in, ok := w.Inputs().Get(id).(*components.InputState); ok && in != nil {
			moveX = in.MoveX
		}

		pos := body.Body.Position()
		vx := moveX * paddle.Speed
		if (pos.X <= paddle.MinX && vx < 0) || (pos.X >= paddle.MaxX && vx > 0) {
			vx = 0
		}
		body.Body.SetVelocity(vx, 0)

		clamped := common.Clamp(pos.X, paddle.MinX, paddle.MaxX)
		if clamped != pos.X {
			body.Body.SetPosition(cp.Vector{X: clamped, Y: pos.Y})
		}

		s.stickBalls(w, ent, vx, ctrl)
	}
}

func (s *PlayerSystem) stickBalls(w *ecs.World, paddleEnt ecs.Entity, paddleVX float64, ctrl *components.PlayerController) {
	cg := w.GetContactGate(paddleEnt)
	if cg == nil || cg.Gate == nil || ctrl.StickRate <= 0 {
		return
	}
	rate := common.Clamp(ctrl.StickRate, 0, 1)

	for _, id := range w.Balls().Entities() {
		ballEnt := w.EntityByID(id)
		if !cg.Gate.IsInContact(ballEnt) {
			continue
		}
		body := w.GetPhysicsBody(ballEnt)
		if body == nil || body.Body == nil {
			continue
		}
		v := body.Body.Velocity()
		body.Body.SetVelocity(common.Lerp(v.X, paddleVX, rate), v.Y)
	}
}
