package components

import (
	cfg "github.com/automoto/numeralrun/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// SFXRequest is a queued one-shot.
type SFXRequest struct {
	Sound  cfg.SoundID
	Pitch  float64
	Volume float64
}

// AudioData stores global audio state (singleton component)
type AudioData struct {
	Context        *audio.Context
	SFXVolume      float64 // 0.0 - 1.0
	AmbienceVolume float64 // 0.0 - 1.0
	Muted          bool
	PendingSFX     []SFXRequest

	// Looping drone players by sound, and their current faded volume
	Drones     map[cfg.SoundID]*audio.Player
	DroneLevel map[cfg.SoundID]float64
}

var Audio = donburi.NewComponentType[AudioData]()

// AmbienceData is a chunk's background audio node.
type AmbienceData struct {
	Sound    cfg.SoundID
	Position math.Vec2
	Enabled  bool
}

var Ambience = donburi.NewComponentType[AmbienceData]()
