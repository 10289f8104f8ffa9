package prefabs

import (
	"fmt"

	"github.com/tannerb/bouncelab/gate"
	"gopkg.in/yaml.v3"
)

// GateSpec is the designer-facing gate configuration.
type GateSpec struct {
	WatchedTag  string  `yaml:"watched_tag"`
	Invert      bool    `yaml:"invert"`
	MinStrength float64 `yaml:"min_strength"`
	Timing      string  `yaml:"timing"`
	Cooldown    float64 `yaml:"cooldown"`
}

// Config converts the spec into a gate config, validating the timing
// mode string.
func (s GateSpec) Config() (gate.Config, error) {
	cfg := gate.Config{
		WatchedTag:      s.WatchedTag,
		InvertMatch:     s.Invert,
		MinimumStrength: s.MinStrength,
		CooldownSeconds: s.Cooldown,
	}
	switch s.Timing {
	case "", "none":
		cfg.Timing = gate.TimingNone
	case "cooldown":
		cfg.Timing = gate.TimingCooldown
	case "initial_contact":
		cfg.Timing = gate.TimingInitialContact
	default:
		return gate.Config{}, fmt.Errorf("prefabs: unknown gate timing %q", s.Timing)
	}
	if cfg.MinimumStrength < 0 {
		return gate.Config{}, fmt.Errorf("prefabs: negative min_strength %v", cfg.MinimumStrength)
	}
	if cfg.CooldownSeconds < 0 {
		return gate.Config{}, fmt.Errorf("prefabs: negative cooldown %v", cfg.CooldownSeconds)
	}
	return cfg, nil
}

// ArenaSpec sizes the walled play area.
type ArenaSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Gravity        float64 `yaml:"gravity"`
	WallElasticity float64 `yaml:"wall_elasticity"`
}

// PaddleSpec configures the player paddle.
type PaddleSpec struct {
	Width     float64  `yaml:"width"`
	Height    float64  `yaml:"height"`
	Speed     float64  `yaml:"speed"`
	Y         float64  `yaml:"y"`
	StickRate float64  `yaml:"stick_rate"`
	Gate      GateSpec `yaml:"gate"`
}

// BallSpec configures spawned balls.
type BallSpec struct {
	Radius      float64 `yaml:"radius"`
	Elasticity  float64 `yaml:"elasticity"`
	Friction    float64 `yaml:"friction"`
	LaunchSpeed float64 `yaml:"launch_speed"`
	SpreadDeg   float64 `yaml:"spread_deg"`
}

// SpawnerSpec configures the ball spawner.
type SpawnerSpec struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Interval int      `yaml:"interval"`
	MaxAlive int      `yaml:"max_alive"`
	Ball     BallSpec `yaml:"ball"`
	Gate     GateSpec `yaml:"gate"`
	Script   string   `yaml:"script"`
}

// BumperSpec configures one bumper.
type BumperSpec struct {
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Radius     float64  `yaml:"radius"`
	Force      float64  `yaml:"force"`
	Elasticity float64  `yaml:"elasticity"`
	Gate       GateSpec `yaml:"gate"`
	Script     string   `yaml:"script"`
}

// PickupSpec configures one collectible.
type PickupSpec struct {
	X            float64  `yaml:"x"`
	Y            float64  `yaml:"y"`
	Radius       float64  `yaml:"radius"`
	Value        int      `yaml:"value"`
	BobAmplitude float64  `yaml:"bob_amplitude"`
	BobSpeed     float64  `yaml:"bob_speed"`
	BobPhase     float64  `yaml:"bob_phase"`
	Gate         GateSpec `yaml:"gate"`
}

// LevelSpec is the whole playground definition.
type LevelSpec struct {
	Name    string       `yaml:"name"`
	Arena   ArenaSpec    `yaml:"arena"`
	Paddle  PaddleSpec   `yaml:"paddle"`
	Spawner SpawnerSpec  `yaml:"spawner"`
	Bumpers []BumperSpec `yaml:"bumpers"`
	Pickups []PickupSpec `yaml:"pickups"`
}

// LoadSpec loads and unmarshals a YAML prefab by filename.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadLevelSpec loads a level by basename, defaulting to level.yaml.
func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = "level.yaml"
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Arena.Width <= 0 || spec.Arena.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: arena must have positive size", name)
	}
	return &spec, nil
}
