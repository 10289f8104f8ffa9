package components

// Transform stores position and rotation in world space.
type Transform struct {
	X, Y  float64
	Angle float64
}

// Velocity mirrors linear velocity out of the physics body so gameplay
// systems can read it without touching Chipmunk.
type Velocity struct {
	VX, VY float64
}

// Tag is the entity's free-form category tag, equality-compared by
// contact gates. Also written into the entity's physics shape.
type Tag struct {
	Name string
}

// Ball stores the physical parameters of a ball body.
type Ball struct {
	Radius     float64
	Elasticity float64
	Friction   float64
}

// Paddle is a kinematic player-driven platform.
type Paddle struct {
	Width  float64
	Height float64
	Speed  float64
	// MinX/MaxX clamp the paddle center inside the arena.
	MinX float64
	MaxX float64
}

// Pickup is a collectible sensor. Rendering bobs around BaseY while
// the sensor shape stays put.
type Pickup struct {
	Radius       float64
	Value        int
	BaseY        float64
	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
	Collected    bool
}

// InputState is the per-frame input snapshot mirrored into the ECS.
type InputState struct {
	MoveX        float64
	ResetPressed bool
}
