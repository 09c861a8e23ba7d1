package movement

import (
	gomath "math"

	"github.com/yohamta/donburi/features/math"
)

// Deform is the cosmetic scale offset layered on top of the stat scale.
// Squash and pop decay toward 1, lean decays toward its target angle.
type Deform struct {
	Squash math.Vec2
	Pop    float64
	Lean   float64
}

func neutralDeform() Deform {
	return Deform{Squash: math.Vec2{X: 1, Y: 1}, Pop: 1}
}

// Trigger overrides the current squash instantly.
func (d *Deform) Trigger(x, y float64) {
	d.Squash = math.Vec2{X: x, Y: y}
}

// TriggerPop overrides the pop multiplier instantly.
func (d *Deform) TriggerPop(p float64) {
	d.Pop = p
}

// Update eases every channel toward neutral.
func (d *Deform) Update(dt float64, t DeformTuning, leanTarget float64) {
	k := approachFactor(t.ReturnRate, dt)
	d.Squash.X += (1 - d.Squash.X) * k
	d.Squash.Y += (1 - d.Squash.Y) * k
	d.Pop += (1 - d.Pop) * approachFactor(t.PopReturnRate, dt)
	d.Lean += (leanTarget - d.Lean) * approachFactor(t.LeanRate, dt)
}

// approachFactor is the frame-rate independent lerp weight for rate over dt.
func approachFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - gomath.Exp(-rate*dt)
}

// RunStretch returns the volume-preserving stretch for a normalized speed in [0, 1].
func RunStretch(amount, speed01 float64) math.Vec2 {
	s := 1 + amount*clamp01(speed01)
	return math.Vec2{X: s, Y: 1 / s}
}

// Compose multiplies base scale, squash, run stretch and pop into the rendered scale.
func (d Deform) Compose(base float64, run math.Vec2) math.Vec2 {
	return math.Vec2{
		X: base * d.Squash.X * run.X * d.Pop,
		Y: base * d.Squash.Y * run.Y * d.Pop,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
