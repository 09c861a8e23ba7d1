package assets

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/automoto/numeralrun/config"
)

// ToneBank synthesizes and caches the game's sounds as 16-bit stereo PCM,
// the format ebiten's audio players read.
type ToneBank struct {
	sampleRate int
	tones      map[config.SoundID]config.ToneSpec
	cache      map[toneKey][]byte
}

type toneKey struct {
	id    config.SoundID
	pitch int // hundredths
}

// NewToneBank creates a bank for the given sample rate and tone table.
func NewToneBank(sampleRate int, tones map[config.SoundID]config.ToneSpec) *ToneBank {
	return &ToneBank{
		sampleRate: sampleRate,
		tones:      tones,
		cache:      make(map[toneKey][]byte),
	}
}

// PCM returns the encoded sound for id at pitch. Pitch is quantized to
// hundredths so jittered cues share cache entries.
func (b *ToneBank) PCM(id config.SoundID, pitch float64) ([]byte, bool) {
	spec, ok := b.tones[id]
	if !ok {
		return nil, false
	}
	key := toneKey{id: id, pitch: int(math.Round(pitch * 100))}
	if data, ok := b.cache[key]; ok {
		return data, true
	}
	buf := Synthesize(spec, b.sampleRate, float64(key.pitch)/100, uint64(id))
	data := EncodePCM16Stereo(buf)
	b.cache[key] = data
	return data, true
}

// Synthesize renders spec as mono samples in [-1, 1]. The frequency sweeps
// linearly from Freq to SweepTo. A spec without attack or release is a loop
// and is trimmed to whole cycles.
func Synthesize(spec config.ToneSpec, sampleRate int, pitch float64, seed uint64) []float64 {
	if pitch <= 0 {
		pitch = 1
	}
	freq := spec.Freq * pitch
	sweep := spec.SweepTo * pitch
	if sweep <= 0 {
		sweep = freq
	}

	duration := spec.Duration
	looping := spec.Attack == 0 && spec.Release == 0 && spec.Wave != config.WaveNoise
	if looping && freq > 0 {
		duration = math.Max(1, math.Round(duration*freq)) / freq
	}
	samples := int(duration * float64(sampleRate))
	if samples <= 0 {
		return nil
	}

	rng := rand.New(rand.NewPCG(seed, 0x6e756d))
	buf := make([]float64, samples)
	phase := 0.0
	for i := range buf {
		switch spec.Wave {
		case config.WaveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case config.WaveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case config.WaveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case config.WaveNoise:
			buf[i] = rng.Float64()*2 - 1
		}

		t := float64(i) / float64(samples)
		phase += (freq + (sweep-freq)*t) / float64(sampleRate)
		if phase >= 1.0 {
			phase -= math.Floor(phase)
		}
	}

	applyEnvelope(buf, sampleRate, spec.Attack, spec.Release)
	gain := spec.Gain
	if gain <= 0 {
		gain = 1
	}
	for i := range buf {
		buf[i] *= gain
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf []float64, sampleRate int, attackSec, releaseSec float64) {
	total := len(buf)
	attack := int(attackSec * float64(sampleRate))
	release := int(releaseSec * float64(sampleRate))

	releaseStart := total - release
	if releaseStart < attack {
		releaseStart = attack
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attack && attack > 0 {
			vol = float64(i) / float64(attack)
		} else if i >= releaseStart && release > 0 {
			vol = float64(total-i) / float64(release)
		}
		buf[i] *= vol
	}
}

// EncodePCM16Stereo converts mono samples to interleaved little-endian
// 16-bit stereo. Samples are clipped to [-1, 1].
func EncodePCM16Stereo(buf []float64) []byte {
	out := make([]byte, len(buf)*4)
	for i, s := range buf {
		s = math.Max(-1, math.Min(1, s))
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], v)
		binary.LittleEndian.PutUint16(out[i*4+2:], v)
	}
	return out
}
