package movement

import "math"

// Stats are the values derived from the current number.
type Stats struct {
	Speed     float64
	JumpForce float64
	Mass      float64
	Scale     float64
}

// magnitude is |n| with 0 treated as 1, so 0 and ±1 share the unscaled base.
func magnitude(n int) int {
	if n < 0 {
		n = -n
	}
	if n < 1 {
		return 1
	}
	return n
}

// ClampNumber saturates n to the configured bounds.
func ClampNumber(t StatTuning, n int) int {
	if n < t.MinNumber {
		return t.MinNumber
	}
	if n > t.MaxNumber {
		return t.MaxNumber
	}
	return n
}

// SpeedFor returns the run speed for n.
func SpeedFor(t StatTuning, n int) float64 {
	return t.BaseSpeed + float64(magnitude(n)-1)*t.SpeedMultiplier
}

// JumpForceFor returns the jump impulse for n. Positive numbers lose jump per
// step, negative numbers gain it, and the result never drops below MinJumpForce.
func JumpForceFor(t StatTuning, n int) float64 {
	var force float64
	if n >= 1 {
		force = t.BaseJumpForce - float64(n-1)*t.JumpPenalty
	} else {
		force = t.BaseJumpForce + float64(magnitude(n)-1)*t.JumpBonus
	}
	return math.Max(force, t.MinJumpForce)
}

// MassFor returns the body mass for n.
func MassFor(t StatTuning, n int) float64 {
	return t.InitialMass * (1 + float64(magnitude(n)-1)*t.MassMultiplier)
}

// ScaleFor returns the uniform size factor for n. Negative numbers shrink,
// floored at MinScale.
func ScaleFor(t StatTuning, n int) float64 {
	step := float64(magnitude(n)-1) * t.ScaleIncrement
	if n >= 0 {
		return 1 + step
	}
	return math.Max(1-step, t.MinScale)
}

// StatsFor bundles every derived stat for n.
func StatsFor(t StatTuning, n int) Stats {
	return Stats{
		Speed:     SpeedFor(t, n),
		JumpForce: JumpForceFor(t, n),
		Mass:      MassFor(t, n),
		Scale:     ScaleFor(t, n),
	}
}
