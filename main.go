package main

import (
	"flag"
	"io"
	"os"

	"github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/fonts"
	"github.com/automoto/numeralrun/scenes"
	"github.com/automoto/numeralrun/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred closes run before exit.
func run() int {
	var (
		tuningPath = flag.String("tuning", "", "YAML tuning overlay")
		watch      = flag.Bool("watch", false, "reload the tuning file when it changes")
		logFile    = flag.String("log-file", "", "also write logs to this file, rotated")
		debug      = flag.Bool("debug", false, "show the debug overlay and enable number keys")
		colliders  = flag.Bool("colliders", false, "outline collision objects in the debug overlay")
		resolution = flag.Int("resolution", -1, "window resolution index")
		seed       = flag.Uint64("seed", 0, "chunk selection seed, 0 for random")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *logFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		defer rotating.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, rotating))
	}
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}
	systems.SetLogger(log)

	config.Debug.Enabled = *debug
	config.Debug.ShowColliders = *colliders

	var updates <-chan config.TuningFile
	if *tuningPath != "" {
		t, err := config.LoadTuning(*tuningPath)
		if err != nil {
			log.WithError(err).Error("could not load tuning")
			return 1
		}
		t.Apply()

		if *watch {
			w, err := config.WatchTuning(*tuningPath, t, log)
			if err != nil {
				log.WithError(err).Warn("could not watch tuning file")
			} else {
				defer w.Close()
				updates = w.Updates
			}
		}
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.WithError(err).Error("could not load fonts")
		return 1
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.WithError(err).Warn("running without saved data")
	}
	saved, err := systems.LoadSettings()
	if err != nil {
		log.WithError(err).Warn("ignoring saved settings")
	}
	settings := systems.MergeSettings(saved)
	if *resolution >= 0 {
		settings.ResolutionIndex = *resolution
	}
	progress, err := systems.LoadProgress()
	if err != nil {
		log.WithError(err).Warn("ignoring saved progress")
	}

	ebiten.SetWindowTitle("numeralrun")
	ebiten.SetTPS(config.C.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
	systems.ApplyWindowSettings(settings)

	game := &Game{scene: scenes.NewRunScene(scenes.Options{
		Seed:     *seed,
		Settings: settings,
		Progress: progress,
		Tuning:   updates,
		Log:      log,
	})}
	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
		return 1
	}
	return 0
}
