package systems

import (
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSettings handles the mute and fullscreen toggles and saves the result.
func UpdateSettings(e *ecs.ECS) {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		return
	}
	settings := components.Settings.Get(entry)
	input := getOrCreateInput(e)

	changed := false
	if GetAction(input, cfg.ActionMute).JustPressed {
		settings.Muted = !settings.Muted
		if audioEntry, ok := components.Audio.First(e.World); ok {
			components.Audio.Get(audioEntry).Muted = settings.Muted
		}
		changed = true
	}
	if GetAction(input, cfg.ActionFullscreen).JustPressed {
		settings.Fullscreen = !settings.Fullscreen
		ApplyWindowSettings(*settings)
		changed = true
	}
	// the window can also leave fullscreen on its own
	if fs := ebiten.IsFullscreen(); !changed && fs != settings.Fullscreen {
		settings.Fullscreen = fs
		changed = true
	}
	if changed {
		SaveCurrentSettings(settings)
	}
}
