package scenes

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/automoto/numeralrun/assets"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/systems"
	"github.com/automoto/numeralrun/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// Options configures a RunScene.
type Options struct {
	Seed     uint64 // 0 picks a random seed
	Settings components.SettingsData
	Progress systems.Progress
	// Tuning delivers reloaded tuning values. May be nil.
	Tuning <-chan cfg.TuningFile
	Log    logrus.FieldLogger
}

// RunScene is the endless run: one player on a stream of chunks.
type RunScene struct {
	ecs  *ecs.ECS
	opts Options
	once sync.Once
	err  error
}

func NewRunScene(opts Options) *RunScene {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &RunScene{opts: opts}
}

// Update returns the setup error, if any, which ends the game loop.
func (rs *RunScene) Update() error {
	rs.once.Do(func() { rs.err = rs.configure() })
	if rs.err != nil {
		return rs.err
	}
	rs.applyTuning()
	rs.ecs.Update()
	return nil
}

func (rs *RunScene) Draw(screen *ebiten.Image) {
	if rs.ecs == nil {
		return
	}
	rs.ecs.Draw(screen)
}

// applyTuning applies reloaded values between ticks. Level values only take
// effect on the next run.
func (rs *RunScene) applyTuning() {
	if rs.opts.Tuning == nil {
		return
	}
	for {
		select {
		case t, ok := <-rs.opts.Tuning:
			if !ok {
				rs.opts.Tuning = nil
				return
			}
			cfg.Feel = t.Feel
			cfg.Camera = t.Camera
			systems.ApplyFeel(rs.ecs, t.Feel)
			systems.ApplyCameraConfig(rs.ecs)
			rs.opts.Log.Info("tuning applied")
		default:
			return
		}
	}
}

func (rs *RunScene) configure() error {
	seed := rs.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rs.opts.Log.WithField("seed", seed).Info("starting run")

	ctx := systems.InitAudio()
	e := ecs.NewECS(donburi.NewWorld())

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdateLevelStream)
	e.AddSystem(systems.UpdateLabel)
	e.AddSystem(systems.UpdatePlayer)
	e.AddSystem(systems.UpdatePhysics)
	e.AddSystem(systems.UpdatePickups)
	e.AddSystem(systems.UpdateCamera)
	e.AddSystem(systems.UpdateDust)
	e.AddSystem(systems.UpdateAudio)
	e.AddSystem(systems.UpdateSettings)

	e.AddRenderer(cfg.Default, systems.DrawLevel)
	e.AddRenderer(cfg.Default, systems.DrawDust)
	e.AddRenderer(cfg.Default, systems.DrawPlayer)
	e.AddRenderer(cfg.Default, systems.DrawLabel)
	e.AddRenderer(cfg.Default, systems.DrawLetterbox)
	e.AddRenderer(cfg.Default, systems.DrawHUD)
	e.AddRenderer(cfg.Default, systems.DrawDebug)

	rs.ecs = e

	factory.CreateSpace(e,
		cfg.Physics.SpaceWidth(cfg.Level.ChunkWidth),
		cfg.Physics.SpaceHeight(),
		cfg.Physics.CellSize, cfg.Physics.CellSize,
		-cfg.Level.ChunkWidth,
	)
	factory.CreateInput(e)
	factory.CreateSettings(e, rs.opts.Settings)
	factory.CreateAudio(e, ctx, rs.opts.Settings)
	factory.CreateStream(e, rs.opts.Progress.BestSection)

	start := math.Vec2{X: 0, Y: cfg.Level.CameraY}
	factory.CreateCamera(e, start)
	player := factory.CreatePlayer(e, start)
	systems.AttachController(e, player, rng)

	templates, err := assets.EmbeddedChunks(cfg.Physics.PixelsPerUnit)
	if err != nil {
		return fmt.Errorf("load chunk templates: %w", err)
	}
	if _, err := systems.SetupLevelStream(e, templates, rng); err != nil {
		return fmt.Errorf("start level stream: %w", err)
	}
	return nil
}
