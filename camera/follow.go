// Package camera eases the view between chunk sections.
package camera

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/features/math"
)

// Config controls the slide.
type Config struct {
	SlideDuration float64 `yaml:"slideDuration"` // seconds
}

func DefaultConfig() Config {
	return Config{SlideDuration: 0.6}
}

// Follow is the camera position with a damped slide toward a target.
type Follow struct {
	cfg    Config
	pos    math.Vec2
	target math.Vec2
	tx, ty *gween.Tween
}

func New(cfg Config, start math.Vec2) *Follow {
	return &Follow{cfg: cfg, pos: start, target: start}
}

// SetConfig changes the slide duration for slides started afterwards.
func (f *Follow) SetConfig(cfg Config) { f.cfg = cfg }

func (f *Follow) Position() math.Vec2 { return f.pos }
func (f *Follow) Target() math.Vec2   { return f.target }
func (f *Follow) Sliding() bool       { return f.tx != nil }

// SlideToTarget starts a slide from the current position. A slide already in
// progress is replaced.
func (f *Follow) SlideToTarget(p math.Vec2) {
	f.target = p
	if f.cfg.SlideDuration <= 0 {
		f.Snap(p)
		return
	}
	d := float32(f.cfg.SlideDuration)
	f.tx = gween.New(float32(f.pos.X), float32(p.X), d, ease.OutCubic)
	f.ty = gween.New(float32(f.pos.Y), float32(p.Y), d, ease.OutCubic)
}

// Snap moves the camera immediately and cancels any slide.
func (f *Follow) Snap(p math.Vec2) {
	f.pos = p
	f.target = p
	f.tx, f.ty = nil, nil
}

// Update advances the slide by dt seconds.
func (f *Follow) Update(dt float64) {
	if f.tx == nil {
		return
	}
	x, doneX := f.tx.Update(float32(dt))
	y, doneY := f.ty.Update(float32(dt))
	f.pos = math.Vec2{X: float64(x), Y: float64(y)}
	if doneX && doneY {
		// the tween runs in float32
		f.Snap(f.target)
	}
}
