package config

import "github.com/automoto/numeralrun/movement"

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Movement sounds
	SoundJump
	SoundLand
	SoundShift
	// Ambience drones, one per chunk theme
	SoundAmbienceLow
	SoundAmbienceMid
	SoundAmbienceHigh
)

// Waveform selects the oscillator used for a synthesized sound.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// ToneSpec describes a synthesized sound. Pitch scales Freq and SweepTo.
type ToneSpec struct {
	Wave     Waveform
	Freq     float64 // Hz
	SweepTo  float64 // Hz at the end, 0 = constant
	Duration float64 // seconds
	Attack   float64
	Release  float64
	Gain     float64
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate       int
	DefaultSFXVol    float64
	DefaultAmbVol    float64
	AmbienceFadeRate float64 // volume per second
}

// SoundConfig maps sound IDs to tone specs
type SoundConfig struct {
	Tones             map[SoundID]ToneSpec
	VolumeMultipliers map[SoundID]float64
	// CueSounds maps controller cues to sounds
	CueSounds map[movement.Cue]SoundID
	// Ambience maps the chunk "ambience" property to a drone
	Ambience map[string]SoundID
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:       44100,
		DefaultSFXVol:    0.8,
		DefaultAmbVol:    0.25,
		AmbienceFadeRate: 0.5,
	}

	Sound = SoundConfig{
		Tones: map[SoundID]ToneSpec{
			SoundJump:         {Wave: WaveSquare, Freq: 330, SweepTo: 660, Duration: 0.12, Attack: 0.005, Release: 0.06, Gain: 0.35},
			SoundLand:         {Wave: WaveNoise, Freq: 1, Duration: 0.08, Attack: 0.002, Release: 0.06, Gain: 0.5},
			SoundShift:        {Wave: WaveSine, Freq: 880, SweepTo: 1320, Duration: 0.1, Attack: 0.005, Release: 0.05, Gain: 0.4},
			SoundAmbienceLow:  {Wave: WaveSine, Freq: 110, Duration: 2, Gain: 0.3},
			SoundAmbienceMid:  {Wave: WaveSaw, Freq: 146.83, Duration: 2, Gain: 0.12},
			SoundAmbienceHigh: {Wave: WaveSine, Freq: 220, Duration: 2, Gain: 0.25},
		},
		VolumeMultipliers: map[SoundID]float64{
			SoundLand: 1.2,
		},
		CueSounds: map[movement.Cue]SoundID{
			movement.CueJump:  SoundJump,
			movement.CueLand:  SoundLand,
			movement.CueShift: SoundShift,
		},
		Ambience: map[string]SoundID{
			"low":  SoundAmbienceLow,
			"mid":  SoundAmbienceMid,
			"high": SoundAmbienceHigh,
		},
	}
}
