package systems

import (
	"log"

	"github.com/tannerb/bouncelab/ecs"
)

// CleanupSystem despawns balls that tunneled out of the arena.
type CleanupSystem struct {
	Margin float64
}

// NewCleanupSystem creates a CleanupSystem.
func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{Margin: 64}
}

// Update destroys escaped balls and their physics bodies.
func (s *CleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	var gone []ecs.Entity
	for _, id := range w.Balls().Entities() {
		ent := w.EntityByID(id)
		tr := w.GetTransform(ent)
		if tr == nil {
			continue
		}
		if pw.OutOfArena(tr.X, tr.Y, s.Margin) {
			gone = append(gone, ent)
		}
	}

	for _, e := range gone {
		if body := w.GetPhysicsBody(e); body != nil {
			pw.RemoveBody(e, body)
		}
		w.DestroyEntity(e)
		log.Printf("CleanupSystem: despawned escaped ball entity=%d", e.ID)
	}
}
