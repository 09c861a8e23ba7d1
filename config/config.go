package config

import (
	"image/color"

	"github.com/automoto/numeralrun/camera"
	"github.com/automoto/numeralrun/levelstream"
	"github.com/automoto/numeralrun/movement"
	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer.
const Default ecs.LayerID = iota

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	TPS    int
}

// PhysicsConfig contains the host physics step values. World units, Y up.
type PhysicsConfig struct {
	Gravity      float64 // units/s², negative is down
	MaxFallSpeed float64
	MaxRiseSpeed float64

	// The resolv space is a fixed pixel grid that slides along with the chunk window.
	PixelsPerUnit  float64
	SpaceChunks    int     // chunk widths covered by the space
	SpaceTop       float64 // world Y of the space's top edge
	SpaceBottom    float64 // world Y of the space's bottom edge
	CellSize       int
	KillY          float64 // falling below this restarts the section
	TeleportMargin float64 // lift above an anchor on teleport
}

// DustConfig contains dust particle configuration
type DustConfig struct {
	TTL          float64 // seconds
	TrailRate    float64 // particles per second while emitting
	BurstSpeed   float64
	Size         float64 // pixels
	Gravity      float64
	MaxParticles int
}

// UIConfig contains HUD and label colors
type UIConfig struct {
	Background  color.RGBA
	Solid       color.RGBA
	Player      color.RGBA
	Pickup      color.RGBA
	Dust        color.RGBA
	TierColors  map[movement.Tier]color.RGBA
	HUDColor    color.RGBA
	LetterBox   color.RGBA
	LabelOffset float64 // units above the collider top
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Enabled       bool
	ShowColliders bool
}

// Global configuration instances
var C *Config
var Feel movement.Tuning
var Level levelstream.Config
var Camera camera.Config
var Physics PhysicsConfig
var Dust DustConfig
var UI UIConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	BrightYellow = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Black        = color.RGBA{A: 255}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		TPS:    60,
	}

	Feel = movement.DefaultTuning()
	Level = levelstream.DefaultConfig()
	Camera = camera.DefaultConfig()

	Physics = PhysicsConfig{
		Gravity:      -40.0,
		MaxFallSpeed: 30.0,
		MaxRiseSpeed: 40.0,

		PixelsPerUnit:  16,
		SpaceChunks:    6,
		SpaceTop:       24,
		SpaceBottom:    -8,
		CellSize:       16,
		KillY:          -6,
		TeleportMargin: 0.05,
	}

	Dust = DustConfig{
		TTL:          0.35,
		TrailRate:    30,
		BurstSpeed:   3.0,
		Size:         2,
		Gravity:      -6,
		MaxParticles: 128,
	}

	UI = UIConfig{
		Background: color.RGBA{R: 18, G: 20, B: 32, A: 255},
		Solid:      DarkBlue,
		Player:     White,
		Pickup:     BrightYellow,
		Dust:       color.RGBA{R: 200, G: 200, B: 210, A: 160},
		TierColors: map[movement.Tier]color.RGBA{
			movement.TierLow:  LightGreen,
			movement.TierMid:  BrightOrange,
			movement.TierHigh: LightRed,
		},
		HUDColor:    White,
		LetterBox:   Black,
		LabelOffset: 0.35,
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		Enabled:       false,
		ShowColliders: false,
	}
}

// SpaceWidth returns the resolv space width in pixels.
func (p PhysicsConfig) SpaceWidth(chunkWidth float64) int {
	return int(float64(p.SpaceChunks) * chunkWidth * p.PixelsPerUnit)
}

// SpaceHeight returns the resolv space height in pixels.
func (p PhysicsConfig) SpaceHeight() int {
	return int((p.SpaceTop - p.SpaceBottom) * p.PixelsPerUnit)
}
