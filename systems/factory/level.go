package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateStream creates the level stream singleton. The manager is set by the
// scene once the player and camera exist.
func CreateStream(ecs *ecs.ECS, bestSection int) *donburi.Entry {
	e := archetypes.Stream.Spawn(ecs)
	components.Stream.SetValue(e, components.StreamData{BestSection: bestSection})
	return e
}

func CreateInput(ecs *ecs.ECS) *donburi.Entry {
	return archetypes.Input.Spawn(ecs)
}

// CreateAudio creates the audio singleton. ctx may be nil when audio is
// unavailable.
func CreateAudio(ecs *ecs.ECS, ctx *audio.Context, settings components.SettingsData) *donburi.Entry {
	e := archetypes.Audio.Spawn(ecs)
	components.Audio.SetValue(e, components.AudioData{
		Context:        ctx,
		SFXVolume:      settings.SFXVolume,
		AmbienceVolume: settings.AmbienceVolume,
		Muted:          settings.Muted,
		Drones:         make(map[cfg.SoundID]*audio.Player),
		DroneLevel:     make(map[cfg.SoundID]float64),
	})
	return e
}

func CreateSettings(ecs *ecs.ECS, settings components.SettingsData) *donburi.Entry {
	e := archetypes.Settings.Spawn(ecs)
	components.Settings.SetValue(e, settings)
	return e
}
