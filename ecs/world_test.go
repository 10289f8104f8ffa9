package ecs

import (
	"testing"

	"github.com/tannerb/bouncelab/ecs/components"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			for _, e := range ents {
				if !w.IsAlive(e) {
					t.Fatalf("entity %v should be alive after creation", e)
				}
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("double destroy should return false")
				}
			}
		})
	}
}

func TestEntityGenerationReuse(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	if !w.DestroyEntity(e1) {
		t.Fatal("failed to destroy entity")
	}

	e2 := w.CreateEntity()
	if e2.ID != e1.ID {
		t.Fatalf("expected slot reuse, got id %d (was %d)", e2.ID, e1.ID)
	}
	if e2.Gen == e1.Gen {
		t.Fatal("reused slot should carry a new generation")
	}
	if w.IsAlive(e1) {
		t.Fatal("stale handle should be dead")
	}
	if !w.IsAlive(e2) {
		t.Fatal("fresh handle should be alive")
	}
	if got := w.EntityByID(e2.ID); got != e2 {
		t.Fatalf("EntityByID returned %v, want %v", got, e2)
	}
}

func TestComponentStorage(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	w.Transforms().Set(e1.ID, &components.Transform{X: 10, Y: 20})
	w.Transforms().Set(e2.ID, &components.Transform{X: 30, Y: 40})
	w.Tags().Set(e1.ID, &components.Tag{Name: "Ball"})

	if tr := w.GetTransform(e1); tr == nil || tr.X != 10 {
		t.Fatalf("expected e1 transform X=10, got %+v", tr)
	}
	if got := w.GetTag(e1); got != "Ball" {
		t.Fatalf("expected tag Ball, got %q", got)
	}
	if got := w.GetTag(e2); got != "" {
		t.Fatalf("expected empty tag for e2, got %q", got)
	}

	// swap-remove keeps the remaining entry reachable
	w.Transforms().Remove(e1.ID)
	if w.GetTransform(e1) != nil {
		t.Fatal("transform should be gone after Remove")
	}
	if tr := w.GetTransform(e2); tr == nil || tr.X != 30 {
		t.Fatalf("e2 transform lost after removing e1: %+v", tr)
	}
	if w.Transforms().Len() != 1 {
		t.Fatalf("expected 1 transform, got %d", w.Transforms().Len())
	}
}

func TestDestroyEntityDropsComponents(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Transforms().Set(e.ID, &components.Transform{X: 1})
	w.Velocities().Set(e.ID, &components.Velocity{VX: 2})
	w.Balls().Set(e.ID, &components.Ball{Radius: 3})

	if !w.DestroyEntity(e) {
		t.Fatal("failed to destroy entity")
	}
	if w.Transforms().Has(e.ID) || w.Velocities().Has(e.ID) || w.Balls().Has(e.ID) {
		t.Fatal("components should be dropped with the entity")
	}
}

type fnSystem func(w *World)

func (f fnSystem) Update(w *World) { f(w) }

func TestWorldUpdateRunsSystemsInOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(fnSystem(func(*World) { order = append(order, "a") }))
	w.AddSystem(fnSystem(func(*World) { order = append(order, "b") }))

	w.Update()
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected system order %v", order)
	}
}

func TestEventQueueFrameLifetime(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	var firstSeen, secondSeen int
	w.AddSystem(fnSystem(func(w *World) {
		w.Events().Push(Event{Type: EventContact, Data: ContactEvent{Entity: e, Tag: "Wall", Strength: 42}})
	}))
	w.AddSystem(fnSystem(func(w *World) {
		firstSeen = len(w.Events().Items())
	}))
	w.AddSystem(fnSystem(func(w *World) {
		// Items is a view, not a drain: the next reader still sees the event
		secondSeen = len(w.Events().Items())
	}))

	w.Update()
	if firstSeen != 1 || secondSeen != 1 {
		t.Fatalf("expected both systems to see 1 event, got %d and %d", firstSeen, secondSeen)
	}
	if n := len(w.Events().Items()); n != 0 {
		t.Fatalf("events should be flushed after Update, got %d", n)
	}

	w.Update()
	if firstSeen != 1 {
		t.Fatalf("expected fresh event each frame, got %d", firstSeen)
	}
}
