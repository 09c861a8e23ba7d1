package assets

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/automoto/numeralrun/config"
)

func TestSynthesizeLength(t *testing.T) {
	spec := config.ToneSpec{Wave: config.WaveSquare, Freq: 440, Duration: 0.1, Attack: 0.01, Release: 0.02, Gain: 0.5}
	buf := Synthesize(spec, 1000, 1, 1)
	if len(buf) != 100 {
		t.Fatalf("len = %d, want 100", len(buf))
	}
	if buf[0] != 0 {
		t.Fatalf("attack should start silent, got %v", buf[0])
	}
	for i, s := range buf {
		if math.Abs(s) > 0.5+1e-9 {
			t.Fatalf("sample %d = %v exceeds gain", i, s)
		}
	}
}

func TestSynthesizeLoopWholeCycles(t *testing.T) {
	spec := config.ToneSpec{Wave: config.WaveSine, Freq: 110, Duration: 2, Gain: 1}
	buf := Synthesize(spec, 44100, 1, 1)
	cycles := float64(len(buf)) * 110 / 44100
	if math.Abs(cycles-math.Round(cycles)) > 0.01 {
		t.Fatalf("loop is %.3f cycles", cycles)
	}
}

func TestNoiseIsDeterministic(t *testing.T) {
	spec := config.ToneSpec{Wave: config.WaveNoise, Duration: 0.05, Attack: 0.001, Release: 0.01}
	a := Synthesize(spec, 8000, 1, 7)
	b := Synthesize(spec, 8000, 1, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestEncodePCM16Stereo(t *testing.T) {
	out := EncodePCM16Stereo([]float64{1, -2, 0})
	if len(out) != 12 {
		t.Fatalf("len = %d", len(out))
	}
	left := int16(binary.LittleEndian.Uint16(out[0:]))
	right := int16(binary.LittleEndian.Uint16(out[2:]))
	if left != math.MaxInt16 || right != left {
		t.Fatalf("first frame = %d/%d", left, right)
	}
	if got := int16(binary.LittleEndian.Uint16(out[4:])); got != -math.MaxInt16 {
		t.Fatalf("clipped sample = %d", got)
	}
}

func TestToneBankCachesByPitch(t *testing.T) {
	bank := NewToneBank(8000, map[config.SoundID]config.ToneSpec{
		config.SoundJump: {Wave: config.WaveSquare, Freq: 300, Duration: 0.05, Attack: 0.005, Release: 0.01},
	})
	a, ok := bank.PCM(config.SoundJump, 1.001)
	if !ok {
		t.Fatal("jump missing")
	}
	b, _ := bank.PCM(config.SoundJump, 1.004)
	if &a[0] != &b[0] {
		t.Fatalf("pitches in the same hundredth should share a buffer")
	}
	if _, ok := bank.PCM(config.SoundShift, 1); ok {
		t.Fatalf("unknown sound should report false")
	}
	if len(bank.cache) != 1 {
		t.Fatalf("cache size = %d", len(bank.cache))
	}
}
