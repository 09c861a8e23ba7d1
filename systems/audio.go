package systems

import (
	"bytes"
	"math"
	"sync"

	"github.com/automoto/numeralrun/assets"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/movement"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalToneBank     *assets.ToneBank
	audioInitOnce      sync.Once
)

// InitAudio creates the process-wide audio context and synthesizes every
// configured sound so the first play does not stall.
func InitAudio() *audio.Context {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalToneBank = assets.NewToneBank(cfg.Audio.SampleRate, cfg.Sound.Tones)
		for id := range cfg.Sound.Tones {
			globalToneBank.PCM(id, 1)
		}
	})
	return globalAudioContext
}

// audioSink queues controller cues as SFX requests.
type audioSink struct {
	ecs *ecs.ECS
}

func (a audioSink) PlayOneShot(cue movement.Cue, pitch, volume float64) {
	sound, ok := cfg.Sound.CueSounds[cue]
	if !ok {
		return
	}
	QueueSFX(a.ecs, components.SFXRequest{Sound: sound, Pitch: pitch, Volume: volume})
}

// QueueSFX appends a one-shot to the pending queue.
func QueueSFX(e *ecs.ECS, req components.SFXRequest) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	data := components.Audio.Get(entry)
	data.PendingSFX = append(data.PendingSFX, req)
}

// UpdateAudio plays pending SFX and fades the chunk drones.
func UpdateAudio(e *ecs.ECS) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	data := components.Audio.Get(entry)

	for _, req := range data.PendingSFX {
		playSFX(data, req)
	}
	data.PendingSFX = data.PendingSFX[:0]

	camX := 0.0
	if camEntry, ok := components.Camera.First(e.World); ok {
		camX = components.Camera.Get(camEntry).Position().X
	}
	var nodes []components.AmbienceData
	components.Ambience.Each(e.World, func(entry *donburi.Entry) {
		nodes = append(nodes, *components.Ambience.Get(entry))
	})
	target, hasTarget := nearestAmbience(nodes, camX)
	updateDrones(data, target, hasTarget, 1.0/float64(cfg.C.TPS))
}

func playSFX(data *components.AudioData, req components.SFXRequest) {
	if data.Context == nil || globalToneBank == nil || data.Muted {
		return
	}
	volume := sfxVolume(data, req)
	if volume <= 0 {
		return
	}
	pcm, ok := globalToneBank.PCM(req.Sound, req.Pitch)
	if !ok {
		return
	}
	player := data.Context.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
}

func sfxVolume(data *components.AudioData, req components.SFXRequest) float64 {
	volume := req.Volume * data.SFXVolume
	if mult, ok := cfg.Sound.VolumeMultipliers[req.Sound]; ok {
		volume *= mult
	}
	return math.Min(volume, 1)
}

// nearestAmbience returns the sound of the enabled node closest to x.
func nearestAmbience(nodes []components.AmbienceData, x float64) (cfg.SoundID, bool) {
	best, found := cfg.SoundNone, false
	bestDist := math.Inf(1)
	for _, n := range nodes {
		if !n.Enabled {
			continue
		}
		if d := math.Abs(n.Position.X - x); d < bestDist {
			best, bestDist, found = n.Sound, d, true
		}
	}
	return best, found
}

// updateDrones fades the target drone in and every other drone out.
func updateDrones(data *components.AudioData, target cfg.SoundID, hasTarget bool, dt float64) {
	if hasTarget {
		if _, ok := data.DroneLevel[target]; !ok {
			data.DroneLevel[target] = 0
		}
	}
	step := cfg.Audio.AmbienceFadeRate * dt
	for sound, level := range data.DroneLevel {
		want := 0.0
		if hasTarget && sound == target {
			want = 1
		}
		level = moveToward(level, want, step)
		data.DroneLevel[sound] = level
		setDroneVolume(data, sound, level)
	}
}

func setDroneVolume(data *components.AudioData, sound cfg.SoundID, level float64) {
	if data.Context == nil || globalToneBank == nil {
		return
	}
	player, ok := data.Drones[sound]
	if !ok {
		if level <= 0 {
			return
		}
		pcm, ok := globalToneBank.PCM(sound, 1)
		if !ok {
			return
		}
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := data.Context.NewPlayer(loop)
		if err != nil {
			logger.WithError(err).WithField("sound", sound).Warn("could not start drone")
			return
		}
		p.Play()
		data.Drones[sound] = p
		player = p
	}

	volume := level * data.AmbienceVolume
	if mult, ok := cfg.Sound.VolumeMultipliers[sound]; ok {
		volume *= mult
	}
	if data.Muted {
		volume = 0
	}
	player.SetVolume(volume)
}

func moveToward(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + math.Copysign(maxDelta, target-current)
}
