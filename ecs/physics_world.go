package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/tannerb/bouncelab/ecs/components"
	"github.com/tannerb/bouncelab/gate"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeBall
	collisionTypePaddle
	collisionTypeBumper
	collisionTypePickup
)

// WallTag is the category tag carried by the arena boundary shapes.
const WallTag = "Wall"

// AcceptedContact is one gate-forwarded collision, buffered during the
// physics step and drained by the contact gate system afterwards.
type AcceptedContact struct {
	Entity      Entity
	Counterpart Entity
	Tag         string
	Strength    float64
	Point       gate.Vec3
}

// PhysicsWorld owns the Chipmunk space, the arena boundary, and the
// per-entity gate registrations. Contact notifications are built from
// arbiters inside the step and handed to the owning entity's gate;
// everything runs on the goroutine calling Step.
type PhysicsWorld struct {
	space         *cp.Space
	arenaW        float64
	arenaH        float64
	handlersReady bool

	shapeToEntity map[*cp.Shape]Entity
	shapeTags     map[*cp.Shape]string
	entityTags    map[Entity]string
	entityGates   map[Entity]*gate.Gate
	entityStats   map[Entity]*gate.Stats

	pending []AcceptedContact
	elapsed float64
}

// NewPhysicsWorld creates a physics world with a walled arena.
func NewPhysicsWorld(width, height, gravity, wallElasticity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	pw := &PhysicsWorld{
		space:         space,
		arenaW:        width,
		arenaH:        height,
		shapeToEntity: make(map[*cp.Shape]Entity),
		shapeTags:     make(map[*cp.Shape]string),
		entityTags:    make(map[Entity]string),
		entityGates:   make(map[Entity]*gate.Gate),
		entityStats:   make(map[Entity]*gate.Stats),
	}
	pw.buildWalls(wallElasticity)
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// ArenaSize returns the arena dimensions.
func (pw *PhysicsWorld) ArenaSize() (float64, float64) {
	if pw == nil {
		return 0, 0
	}
	return pw.arenaW, pw.arenaH
}

// Now returns seconds of simulated time. Gates registered with this
// world use it as their clock, so debounce windows follow the
// simulation rather than the wall clock.
func (pw *PhysicsWorld) Now() float64 {
	if pw == nil {
		return 0
	}
	return pw.elapsed
}

// SetEntityTag registers the category tag counterpart gates see for
// this entity.
func (pw *PhysicsWorld) SetEntityTag(e Entity, tag string) {
	if pw == nil || !e.Valid() {
		return
	}
	if tag == "" {
		delete(pw.entityTags, e)
		return
	}
	pw.entityTags[e] = tag
}

// SetEntityGate registers the gate (and optional stats collaborator)
// fed with the entity's contacts. A nil gate unregisters.
func (pw *PhysicsWorld) SetEntityGate(e Entity, g *gate.Gate, stats *gate.Stats) {
	if pw == nil || !e.Valid() {
		return
	}
	if g == nil {
		delete(pw.entityGates, e)
		delete(pw.entityStats, e)
		return
	}
	g.SetClock(pw.Now)
	pw.entityGates[e] = g
	if stats != nil {
		pw.entityStats[e] = stats
	} else {
		delete(pw.entityStats, e)
	}
}

// EntityGate returns the registered gate for an entity, if any.
func (pw *PhysicsWorld) EntityGate(e Entity) *gate.Gate {
	if pw == nil {
		return nil
	}
	return pw.entityGates[e]
}

// EnsureBallBody creates a dynamic circle body for a ball entity if it
// does not already have one.
func (pw *PhysicsWorld) EnsureBallBody(e Entity, tr *components.Transform, vel *components.Velocity, ball *components.Ball, body *components.PhysicsBody) *components.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() || tr == nil || ball == nil {
		return body
	}
	if body != nil && body.Body != nil {
		return body
	}

	mass := 1.0
	moment := cp.MomentForCircle(mass, 0, ball.Radius, cp.Vector{})
	cpBody := cp.NewBody(mass, moment)
	cpBody.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})
	if vel != nil {
		cpBody.SetVelocity(vel.VX, vel.VY)
	}

	shape := cp.NewCircle(cpBody, ball.Radius, cp.Vector{})
	shape.SetElasticity(ball.Elasticity)
	shape.SetFriction(ball.Friction)
	shape.SetCollisionType(collisionTypeBall)

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e

	return &components.PhysicsBody{Body: cpBody, Shape: shape}
}

// EnsurePaddleBody creates a kinematic box body for a paddle entity if
// it does not already have one.
func (pw *PhysicsWorld) EnsurePaddleBody(e Entity, tr *components.Transform, paddle *components.Paddle, body *components.PhysicsBody) *components.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() || tr == nil || paddle == nil {
		return body
	}
	if body != nil && body.Body != nil {
		return body
	}

	cpBody := cp.NewKinematicBody()
	cpBody.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})

	shape := cp.NewBox(cpBody, paddle.Width, paddle.Height, 0)
	shape.SetElasticity(0.2)
	shape.SetFriction(0.9)
	shape.SetCollisionType(collisionTypePaddle)

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e

	return &components.PhysicsBody{Body: cpBody, Shape: shape}
}

// AddBumperShape attaches a static circle shape for a bumper entity.
func (pw *PhysicsWorld) AddBumperShape(e Entity, x, y, radius, elasticity float64) *components.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	shape := cp.NewCircle(pw.space.StaticBody, radius, cp.Vector{X: x, Y: y})
	shape.SetElasticity(elasticity)
	shape.SetFriction(0.5)
	shape.SetCollisionType(collisionTypeBumper)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	return &components.PhysicsBody{Shape: shape}
}

// AddPickupShape attaches a static sensor circle for a pickup entity.
func (pw *PhysicsWorld) AddPickupShape(e Entity, x, y, radius float64) *components.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	shape := cp.NewCircle(pw.space.StaticBody, radius, cp.Vector{X: x, Y: y})
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypePickup)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	return &components.PhysicsBody{Shape: shape}
}

// RemoveBody detaches an entity's shapes and body from the space and
// drops its registrations.
func (pw *PhysicsWorld) RemoveBody(e Entity, body *components.PhysicsBody) {
	if pw == nil || pw.space == nil || body == nil {
		return
	}
	if body.Shape != nil {
		pw.space.RemoveShape(body.Shape)
		delete(pw.shapeToEntity, body.Shape)
		body.Shape = nil
	}
	if body.Body != nil {
		pw.space.RemoveBody(body.Body)
		body.Body = nil
	}
	delete(pw.entityTags, e)
	delete(pw.entityGates, e)
	delete(pw.entityStats, e)
}

// Step advances the simulation. Contact handlers run inside this call
// on the caller's goroutine.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.elapsed += dt
	pw.space.Step(dt)
}

// DrainContacts returns the gate-forwarded contacts of the last step
// and clears the buffer.
func (pw *PhysicsWorld) DrainContacts() []AcceptedContact {
	if pw == nil || len(pw.pending) == 0 {
		return nil
	}
	out := pw.pending
	pw.pending = nil
	return out
}

func (pw *PhysicsWorld) buildWalls(elasticity float64) {
	if pw == nil || pw.space == nil || pw.arenaW <= 0 || pw.arenaH <= 0 {
		return
	}
	thickness := 1.0
	corners := []struct{ a, b cp.Vector }{
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: pw.arenaW, Y: 0}},
		{cp.Vector{X: 0, Y: pw.arenaH}, cp.Vector{X: pw.arenaW, Y: pw.arenaH}},
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: pw.arenaH}},
		{cp.Vector{X: pw.arenaW, Y: 0}, cp.Vector{X: pw.arenaW, Y: pw.arenaH}},
	}
	for _, seg := range corners {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetElasticity(elasticity)
		shape.SetFriction(0.7)
		shape.SetCollisionType(collisionTypeWall)
		pw.space.AddShape(shape)
		pw.shapeTags[shape] = WallTag
	}
}

func (pw *PhysicsWorld) tagOf(shape *cp.Shape) string {
	if e, ok := pw.shapeToEntity[shape]; ok {
		return pw.entityTags[e]
	}
	return pw.shapeTags[shape]
}

// identityOf returns a comparable handle for the counterpart behind a
// shape: the entity when known, otherwise the shape itself (static
// boundary shapes have no entity but are stable for a contact).
func (pw *PhysicsWorld) identityOf(shape *cp.Shape) gate.Identity {
	if e, ok := pw.shapeToEntity[shape]; ok {
		return e
	}
	if shape == nil {
		return nil
	}
	return shape
}

// deliver builds a notification for the owner of `own` about contact
// with `other` and runs it through the owner's gate.
func (pw *PhysicsWorld) deliver(arb *cp.Arbiter, own, other *cp.Shape) {
	ent, ok := pw.shapeToEntity[own]
	if !ok {
		return
	}

	rel := own.Body().Velocity().Sub(other.Body().Velocity())
	var point gate.Vec3
	if cps := arb.ContactPointSet(); cps.Count > 0 {
		point = gate.Vec3{X: cps.Points[0].PointA.X, Y: cps.Points[0].PointA.Y}
	}

	n := gate.Notification{
		Tag:              pw.tagOf(other),
		Counterpart:      pw.identityOf(other),
		RelativeVelocity: gate.Vec3{X: rel.X, Y: rel.Y},
		ContactPoint:     point,
	}

	// Stats see every notification's strength, forwarded or not.
	if stats := pw.entityStats[ent]; stats != nil {
		stats.Record(n.RelativeVelocity.Length())
	}

	g := pw.entityGates[ent]
	if g == nil {
		return
	}
	if d := g.Notify(n); d.Forwarded {
		var counterpart Entity
		if ce, ok := n.Counterpart.(Entity); ok {
			counterpart = ce
		}
		pw.pending = append(pw.pending, AcceptedContact{
			Entity:      ent,
			Counterpart: counterpart,
			Tag:         n.Tag,
			Strength:    d.Strength,
			Point:       point,
		})
	}
}

func (pw *PhysicsWorld) separate(own, other *cp.Shape) {
	ent, ok := pw.shapeToEntity[own]
	if !ok {
		return
	}
	if g := pw.entityGates[ent]; g != nil {
		g.ClearContact(pw.identityOf(other))
	}
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	// Balls notify on every solver step of an ongoing contact; the
	// gates decide what is worth forwarding. Pickups are sensors and
	// only report begin/separate.
	solid := []cp.CollisionType{collisionTypeWall, collisionTypePaddle, collisionTypeBumper, collisionTypeBall}
	for _, other := range solid {
		handler := pw.space.NewCollisionHandler(collisionTypeBall, other)
		handler.UserData = pw
		handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*PhysicsWorld)
			if !ok || world == nil {
				return true
			}
			a, b := arb.Shapes()
			world.deliver(arb, a, b)
			world.deliver(arb, b, a)
			return true
		}
		handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			world, ok := userData.(*PhysicsWorld)
			if !ok || world == nil {
				return
			}
			a, b := arb.Shapes()
			world.separate(a, b)
			world.separate(b, a)
		}
	}

	pickupHandler := pw.space.NewCollisionHandler(collisionTypeBall, collisionTypePickup)
	pickupHandler.UserData = pw
	pickupHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		a, b := arb.Shapes()
		world.deliver(arb, a, b)
		world.deliver(arb, b, a)
		return true
	}
	pickupHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return
		}
		a, b := arb.Shapes()
		world.separate(a, b)
		world.separate(b, a)
	}

	pw.handlersReady = true
}

// OutOfArena reports whether a position has left the arena by more
// than margin. Used by the cleanup system to despawn escaped balls.
func (pw *PhysicsWorld) OutOfArena(x, y, margin float64) bool {
	if pw == nil {
		return false
	}
	return x < -margin || x > pw.arenaW+margin || y < -margin || y > pw.arenaH+margin
}
