package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
	"github.com/tannerb/bouncelab/gate"
)

// BallTag is the category tag spawned balls carry.
const BallTag = "Ball"

// SpawnerSystem drops new balls on a frame countdown, capped by how
// many are already in play.
type SpawnerSystem struct {
	rng *rand.Rand
}

// NewSpawnerSystem creates a SpawnerSystem with a time-seeded rng.
func NewSpawnerSystem() *SpawnerSystem {
	return &SpawnerSystem{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSpawnerSystemSeeded creates a deterministic SpawnerSystem.
func NewSpawnerSystemSeeded(seed int64) *SpawnerSystem {
	return &SpawnerSystem{rng: rand.New(rand.NewSource(seed))}
}

// Update ticks countdowns and spawns when one expires.
func (s *SpawnerSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}
	spawners := w.Spawners()
	for _, id := range spawners.Entities() {
		sp, ok := spawners.Get(id).(*components.Spawner)
		if !ok || sp == nil {
			continue
		}
		if sp.Countdown > 0 {
			sp.Countdown--
			continue
		}
		if sp.MaxAlive > 0 && w.Balls().Len() >= sp.MaxAlive {
			continue
		}
		tr := w.GetTransform(w.EntityByID(id))
		if tr == nil {
			continue
		}

		ball := s.spawnBall(w, sp, tr)
		w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Data: ecs.SpawnEvent{
			Spawner: w.EntityByID(id),
			Ball:    ball,
		}})
		sp.Countdown = sp.Interval
	}
}

func (s *SpawnerSystem) spawnBall(w *ecs.World, sp *components.Spawner, at *components.Transform) ecs.Entity {
	e := w.CreateEntity()
	w.Transforms().Set(e.ID, &components.Transform{X: at.X, Y: at.Y})
	w.Tags().Set(e.ID, &components.Tag{Name: BallTag})
	w.Balls().Set(e.ID, &components.Ball{
		Radius:     sp.BallRadius,
		Elasticity: sp.BallElasticity,
		Friction:   sp.BallFriction,
	})

	// Launch downward with jitter inside the spread cone.
	jitter := (s.rng.Float64() - 0.5) * sp.SpreadDeg * math.Pi / 180
	w.Velocities().Set(e.ID, &components.Velocity{
		VX: math.Sin(jitter) * sp.LaunchSpeed,
		VY: math.Cos(jitter) * sp.LaunchSpeed,
	})

	if sp.BallGate.WatchedTag != "" || sp.BallGate.InvertMatch {
		w.ContactGates().Set(e.ID, &components.ContactGate{
			Gate:   gate.New(sp.BallGate),
			Stats:  &gate.Stats{},
			Script: sp.BallScript,
		})
	}
	return e
}
