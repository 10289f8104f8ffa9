package ecs

import "github.com/tannerb/bouncelab/ecs/components"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	systems  []System
	events   EventQueue

	transforms *SparseSet
	velocities *SparseSet
	tags       *SparseSet
	balls      *SparseSet
	paddles    *SparseSet
	pickups    *SparseSet
	bumpers    *SparseSet
	spawners   *SparseSet
	scores     *SparseSet
	gates      *SparseSet
	players    *SparseSet
	inputs     *SparseSet
	physBodies *SparseSet

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity marks an entity as dead and drops its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range []*SparseSet{
		w.transforms, w.velocities, w.tags, w.balls, w.paddles,
		w.pickups, w.bumpers, w.spawners, w.scores, w.gates,
		w.players, w.inputs, w.physBodies,
	} {
		s.Remove(e.ID)
	}
	return true
}

// EntityByID rebuilds the live handle for a dense storage id. Returns
// the zero Entity when the id was never issued.
func (w *World) EntityByID(id int) Entity {
	if w == nil || id <= 0 || id > len(w.entities.gen) {
		return Entity{}
	}
	return Entity{ID: id, Gen: w.entities.gen[id-1]}
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, then clears the frame's events.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func ensure(s **SparseSet) *SparseSet {
	if *s == nil {
		*s = &SparseSet{}
	}
	return *s
}

// Transforms returns the transform storage.
func (w *World) Transforms() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.transforms)
}

// Velocities returns the velocity storage.
func (w *World) Velocities() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.velocities)
}

// Tags returns the tag storage.
func (w *World) Tags() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.tags)
}

// Balls returns the ball storage.
func (w *World) Balls() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.balls)
}

// Paddles returns the paddle storage.
func (w *World) Paddles() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.paddles)
}

// Pickups returns the pickup storage.
func (w *World) Pickups() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.pickups)
}

// Bumpers returns the bumper storage.
func (w *World) Bumpers() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.bumpers)
}

// Spawners returns the spawner storage.
func (w *World) Spawners() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.spawners)
}

// Scores returns the score counter storage.
func (w *World) Scores() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.scores)
}

// ContactGates returns the contact gate storage.
func (w *World) ContactGates() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.gates)
}

// PlayerControllers returns the player controller storage.
func (w *World) PlayerControllers() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.players)
}

// Inputs returns the input state storage.
func (w *World) Inputs() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.inputs)
}

// PhysicsBodies returns the physics body storage.
func (w *World) PhysicsBodies() *SparseSet {
	if w == nil {
		return nil
	}
	return ensure(&w.physBodies)
}

// GetTransform returns the transform for an entity, or nil.
func (w *World) GetTransform(e Entity) *components.Transform {
	if v := w.Transforms().Get(e.ID); v != nil {
		if tr, ok := v.(*components.Transform); ok {
			return tr
		}
	}
	return nil
}

// GetContactGate returns the contact gate for an entity, or nil.
func (w *World) GetContactGate(e Entity) *components.ContactGate {
	if v := w.ContactGates().Get(e.ID); v != nil {
		if g, ok := v.(*components.ContactGate); ok {
			return g
		}
	}
	return nil
}

// GetPhysicsBody returns the physics body for an entity, or nil.
func (w *World) GetPhysicsBody(e Entity) *components.PhysicsBody {
	if v := w.PhysicsBodies().Get(e.ID); v != nil {
		if b, ok := v.(*components.PhysicsBody); ok {
			return b
		}
	}
	return nil
}

// GetTag returns the tag name for an entity, or "".
func (w *World) GetTag(e Entity) string {
	if v := w.Tags().Get(e.ID); v != nil {
		if t, ok := v.(*components.Tag); ok {
			return t.Name
		}
	}
	return ""
}
