package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
)

// InputSystem polls the keyboard into the player entity's InputState.
type InputSystem struct {
	Entity ecs.Entity
}

// NewInputSystem creates an InputSystem bound to the player entity.
func NewInputSystem(entity ecs.Entity) *InputSystem {
	return &InputSystem{Entity: entity}
}

// Update snapshots input state into the ECS.
func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s == nil || s.Entity.ID == 0 {
		return
	}
	st, ok := w.Inputs().Get(s.Entity.ID).(*components.InputState)
	if !ok || st == nil {
		st = &components.InputState{}
		w.Inputs().Set(s.Entity.ID, st)
	}

	st.MoveX = 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		st.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		st.MoveX += 1
	}
	st.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
}
