package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tannerb/bouncelab/ecs"
	"github.com/tannerb/bouncelab/ecs/components"
	"github.com/tannerb/bouncelab/ecs/systems"
	"github.com/tannerb/bouncelab/gate"
	"github.com/tannerb/bouncelab/prefabs"
	"github.com/tannerb/bouncelab/save"
	"github.com/tannerb/bouncelab/script"
)

// Game owns the world, the HUD, and the hot-reload watcher.
type Game struct {
	frames int
	debug  bool
	paused bool

	levelName string
	level     *prefabs.LevelSpec

	world   *ecs.World
	scripts *script.Library
	saves   *save.Manager
	hud     *HUD
	watcher *prefabs.Watcher

	playerEnt ecs.Entity
	scoreEnt  ecs.Entity
}

// NewGame loads the level spec and builds the playground.
func NewGame(levelName string, debug bool) (*Game, error) {
	spec, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:     debug,
		levelName: levelName,
		level:     spec,
		scripts:   script.NewLibrary(prefabs.LoadScript),
		saves:     save.Open("bouncelab"),
	}

	if err := g.buildWorld(spec); err != nil {
		return nil, err
	}

	if watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Printf("Game: prefab hot reload disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	g.hud = NewHUD(g)
	return g, nil
}

func (g *Game) buildWorld(spec *prefabs.LevelSpec) error {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(spec.Arena.Width, spec.Arena.Height, spec.Arena.Gravity, spec.Arena.WallElasticity)
	w.SetPhysicsWorld(pw)

	paddleCfg, err := spec.Paddle.Gate.Config()
	if err != nil {
		return err
	}
	paddle := w.CreateEntity()
	halfW := spec.Paddle.Width / 2
	w.Transforms().Set(paddle.ID, &components.Transform{X: spec.Arena.Width / 2, Y: spec.Paddle.Y})
	w.Paddles().Set(paddle.ID, &components.Paddle{
		Width:  spec.Paddle.Width,
		Height: spec.Paddle.Height,
		Speed:  spec.Paddle.Speed,
		MinX:   halfW,
		MaxX:   spec.Arena.Width - halfW,
	})
	w.Tags().Set(paddle.ID, &components.Tag{Name: "Paddle"})
	w.PlayerControllers().Set(paddle.ID, &components.PlayerController{StickRate: spec.Paddle.StickRate})
	w.ContactGates().Set(paddle.ID, &components.ContactGate{Gate: gate.New(paddleCfg), Stats: &gate.Stats{}})
	g.playerEnt = paddle

	spawnCfg, err := spec.Spawner.Gate.Config()
	if err != nil {
		return err
	}
	spawner := w.CreateEntity()
	w.Transforms().Set(spawner.ID, &components.Transform{X: spec.Spawner.X, Y: spec.Spawner.Y})
	w.Spawners().Set(spawner.ID, &components.Spawner{
		Interval:       spec.Spawner.Interval,
		MaxAlive:       spec.Spawner.MaxAlive,
		BallRadius:     spec.Spawner.Ball.Radius,
		BallElasticity: spec.Spawner.Ball.Elasticity,
		BallFriction:   spec.Spawner.Ball.Friction,
		LaunchSpeed:    spec.Spawner.Ball.LaunchSpeed,
		SpreadDeg:      spec.Spawner.Ball.SpreadDeg,
		BallGate:       spawnCfg,
		BallScript:     spec.Spawner.Script,
	})

	for i, b := range spec.Bumpers {
		cfg, err := b.Gate.Config()
		if err != nil {
			return fmt.Errorf("bumper %d: %w", i, err)
		}
		e := w.CreateEntity()
		w.Transforms().Set(e.ID, &components.Transform{X: b.X, Y: b.Y})
		w.Bumpers().Set(e.ID, &components.Bumper{Radius: b.Radius, Force: b.Force})
		w.Tags().Set(e.ID, &components.Tag{Name: "Bumper"})
		w.ContactGates().Set(e.ID, &components.ContactGate{Gate: gate.New(cfg), Stats: &gate.Stats{}, Script: b.Script})
		if body := pw.AddBumperShape(e, b.X, b.Y, b.Radius, b.Elasticity); body != nil {
			w.PhysicsBodies().Set(e.ID, body)
		}
	}

	total := 0
	for i, p := range spec.Pickups {
		cfg, err := p.Gate.Config()
		if err != nil {
			return fmt.Errorf("pickup %d: %w", i, err)
		}
		e := w.CreateEntity()
		w.Transforms().Set(e.ID, &components.Transform{X: p.X, Y: p.Y})
		w.Pickups().Set(e.ID, &components.Pickup{
			Radius:       p.Radius,
			Value:        p.Value,
			BaseY:        p.Y,
			BobAmplitude: p.BobAmplitude,
			BobSpeed:     p.BobSpeed,
			BobPhase:     p.BobPhase,
		})
		w.Tags().Set(e.ID, &components.Tag{Name: "Pickup"})
		w.ContactGates().Set(e.ID, &components.ContactGate{Gate: gate.New(cfg), Stats: &gate.Stats{}})
		if body := pw.AddPickupShape(e, p.X, p.Y, p.Radius); body != nil {
			w.PhysicsBodies().Set(e.ID, body)
		}
		total += p.Value
	}

	score := w.CreateEntity()
	w.Scores().Set(score.ID, &components.ScoreCounter{Total: total, RenderedText: fmt.Sprintf("0 / %d", total)})
	g.scoreEnt = score

	w.AddSystem(systems.NewInputSystem(paddle))
	w.AddSystem(systems.NewPlayerSystem())
	w.AddSystem(systems.NewSpawnerSystem())
	w.AddSystem(systems.NewPhysicsSystem())
	w.AddSystem(systems.NewContactGateSystem(g.scripts))
	w.AddSystem(systems.NewBumperSystem())
	w.AddSystem(systems.NewPickupSystem())
	w.AddSystem(systems.NewCleanupSystem())
	w.AddSystem(&resetSystem{player: paddle})
	w.AddSystem(&recordSystem{saves: g.saves})

	g.world = w
	return nil
}

// reloadLevel rebuilds the world from the (possibly edited) level spec.
func (g *Game) reloadLevel() {
	spec, err := prefabs.LoadLevelSpec(g.levelName)
	if err != nil {
		log.Printf("Game: reload failed, keeping current level: %v", err)
		return
	}
	if err := g.buildWorld(spec); err != nil {
		log.Printf("Game: rebuild failed, keeping current level: %v", err)
		return
	}
	g.level = spec
	log.Printf("Game: reloaded level %q", spec.Name)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if strings.HasSuffix(name, ".tengo") {
				g.scripts.Invalidate(filepath.Base(name))
				log.Printf("Game: invalidated script %s", name)
				continue
			}
			g.reloadLevel()
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("Game: watcher error: %v", err)
			}
			return
		default:
			return
		}
	}
}

// Update advances one frame.
func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	g.hud.Update()
	if g.paused {
		return nil
	}

	g.world.Update()
	return nil
}

// Shutdown persists records. Called once when the window closes.
func (g *Game) Shutdown() {
	sc := g.scoreCounter()
	if sc != nil {
		g.saves.RecordScore(sc.Collected)
	}
	if err := g.saves.Save(); err != nil {
		log.Printf("Game: %v", err)
	}
}

func (g *Game) scoreCounter() *components.ScoreCounter {
	if g == nil || g.world == nil {
		return nil
	}
	if v := g.world.Scores().Get(g.scoreEnt.ID); v != nil {
		if sc, ok := v.(*components.ScoreCounter); ok {
			return sc
		}
	}
	return nil
}

var (
	colorBackdrop = color.NRGBA{R: 0x12, G: 0x14, B: 0x1c, A: 0xff}
	colorWall     = color.NRGBA{R: 0x3a, G: 0x41, B: 0x55, A: 0xff}
	colorBall     = color.NRGBA{R: 0xe8, G: 0xd8, B: 0x6a, A: 0xff}
	colorPaddle   = color.NRGBA{R: 0x6a, G: 0xa8, B: 0xe8, A: 0xff}
	colorBumper   = color.NRGBA{R: 0xc8, G: 0x5a, B: 0x5a, A: 0xff}
	colorFlash    = color.NRGBA{R: 0xff, G: 0xa0, B: 0x7a, A: 0xff}
	colorPickup   = color.NRGBA{R: 0x7a, G: 0xc8, B: 0x8a, A: 0xff}
)

// Draw renders the playground with flat shapes.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackdrop)

	w := g.world
	arenaW, arenaH := w.PhysicsWorld().ArenaSize()
	vector.StrokeRect(screen, 0, 0, float32(arenaW), float32(arenaH), 2, colorWall, true)

	for _, id := range w.Bumpers().Entities() {
		bmp, _ := w.Bumpers().Get(id).(*components.Bumper)
		tr := w.GetTransform(w.EntityByID(id))
		if bmp == nil || tr == nil {
			continue
		}
		c := colorBumper
		if bmp.Flash > 0 {
			c = colorFlash
		}
		vector.DrawFilledCircle(screen, float32(tr.X), float32(tr.Y), float32(bmp.Radius), c, true)
	}

	for _, id := range w.Pickups().Entities() {
		pk, _ := w.Pickups().Get(id).(*components.Pickup)
		tr := w.GetTransform(w.EntityByID(id))
		if pk == nil || tr == nil || pk.Collected {
			continue
		}
		vector.DrawFilledCircle(screen, float32(tr.X), float32(tr.Y), float32(pk.Radius), colorPickup, true)
	}

	for _, id := range w.Paddles().Entities() {
		p, _ := w.Paddles().Get(id).(*components.Paddle)
		tr := w.GetTransform(w.EntityByID(id))
		if p == nil || tr == nil {
			continue
		}
		vector.DrawFilledRect(screen,
			float32(tr.X-p.Width/2), float32(tr.Y-p.Height/2),
			float32(p.Width), float32(p.Height), colorPaddle, true)
	}

	for _, id := range w.Balls().Entities() {
		b, _ := w.Balls().Get(id).(*components.Ball)
		tr := w.GetTransform(w.EntityByID(id))
		if b == nil || tr == nil {
			continue
		}
		vector.DrawFilledCircle(screen, float32(tr.X), float32(tr.Y), float32(b.Radius), colorBall, true)
	}

	g.hud.Draw(screen)

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w := g.world
	y := 40
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  fps %.1f  balls %d", g.frames, ebiten.ActualFPS(), w.Balls().Len()), 8, 24)
	for _, id := range w.ContactGates().Entities() {
		cg, _ := w.ContactGates().Get(id).(*components.ContactGate)
		if cg == nil || cg.Stats == nil {
			continue
		}
		min, max, avg, count := cg.Stats.Snapshot()
		tag := w.GetTag(w.EntityByID(id))
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("gate %d (%s): n=%d min=%.0f max=%.0f avg=%.0f contacts=%d",
				id, tag, count, min, max, avg, cg.Gate.ContactCount()), 8, y)
		y += 16
	}
}

// LayoutF scales the window to the arena.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.level.Arena.Width, g.level.Arena.Height
}

// Layout is unused; LayoutF is authoritative.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// resetSystem clears gate tracking and stats when reset is pressed.
type resetSystem struct {
	player ecs.Entity
}

func (s *resetSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}
	in, ok := w.Inputs().Get(s.player.ID).(*components.InputState)
	if !ok || in == nil || !in.ResetPressed {
		return
	}
	for _, id := range w.ContactGates().Entities() {
		if cg, ok := w.ContactGates().Get(id).(*components.ContactGate); ok && cg != nil {
			cg.Gate.ResetContactTracking()
			cg.Stats.Reset()
		}
	}
	log.Printf("Game: gate tracking reset")
}

// recordSystem folds this frame's events into the persistent tallies.
type recordSystem struct {
	saves *save.Manager
}

func (s *recordSystem) Update(w *ecs.World) {
	if w == nil || s == nil || s.saves == nil {
		return
	}
	for _, evt := range w.Events().Items() {
		switch evt.Type {
		case ecs.EventSpawn:
			s.saves.CountSpawn()
		case ecs.EventContact:
			s.saves.CountContact()
		case ecs.EventScore:
			if se, ok := evt.Data.(ecs.ScoreEvent); ok {
				s.saves.RecordScore(se.Collected)
			}
		}
	}
}
