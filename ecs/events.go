package ecs

import "github.com/tannerb/bouncelab/gate"

// Event is a generic world event payload.
type Event struct {
	Type string
	Data any
}

// Event type tags.
const (
	EventContact = "contact"
	EventScore   = "score"
	EventSpawn   = "spawn"
)

// ContactEvent is emitted once per gate-forwarded collision.
type ContactEvent struct {
	Entity      Entity
	Counterpart Entity
	Tag         string
	Strength    float64
	Point       gate.Vec3
}

// ScoreEvent is emitted when a pickup is collected.
type ScoreEvent struct {
	Entity    Entity
	Value     int
	Collected int
	Total     int
}

// SpawnEvent is emitted when a spawner creates a ball.
type SpawnEvent struct {
	Spawner Entity
	Ball    Entity
}

// EventQueue is a per-frame FIFO. Systems push during Update; later
// systems read via Items; the world clears it at the end of the frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns a view of the events pushed this frame without
// consuming them, so multiple systems can react to the same event.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
