package components

import "github.com/tannerb/bouncelab/gate"

// ContactGate attaches a collision event gate to an entity. The
// physics world feeds the gate every raw contact involving the entity;
// only forwarded contacts become world events.
type ContactGate struct {
	Gate  *gate.Gate
	Stats *gate.Stats
	// Script names an optional tengo listener run on each forwarded
	// contact. Empty means none.
	Script string
}

// Bumper repels balls on gate-forwarded contact. Debouncing lives in
// the entity's ContactGate (cooldown timing mode), not here.
type Bumper struct {
	Radius float64
	Force  float64
	// Flash counts down render frames of impact feedback.
	Flash int
}

// Spawner periodically creates balls until MaxAlive are in play.
type Spawner struct {
	Interval  int // frames between spawns
	Countdown int
	MaxAlive  int

	BallRadius     float64
	BallElasticity float64
	BallFriction   float64
	LaunchSpeed    float64
	SpreadDeg      float64

	// BallGate configures the gate attached to each spawned ball.
	BallGate   gate.Config
	BallScript string
}

// ScoreCounter accumulates collected pickup values.
type ScoreCounter struct {
	Collected    int
	Total        int
	RenderedText string
}

// PlayerController marks the paddle driven by input and carries the
// platform-stick tuning.
type PlayerController struct {
	// StickRate is how quickly a resting ball's horizontal velocity is
	// pulled toward the paddle's, per frame, in [0,1].
	StickRate float64
}
