// Package movement is the player feel controller: number-driven stats,
// acceleration, jump buffering, coyote time, variable jump height, apex hang
// and squash/stretch. It has no dependencies on ebitengine or resolv; the host
// injects a Body and a Transform.
package movement

import (
	gomath "math"
	"math/rand/v2"
	"strconv"

	"github.com/yohamta/donburi/features/math"
)

// State is the airborne phase derived each tick.
type State int

const (
	StateGrounded State = iota
	StateRising
	StateFalling
	StateApex
)

func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateRising:
		return "rising"
	case StateFalling:
		return "falling"
	case StateApex:
		return "apex"
	}
	return "unknown"
}

var up = math.Vec2{X: 0, Y: 1}

// Controller owns one player's movement state.
type Controller struct {
	tuning Tuning
	body   Body
	xf     Transform
	sinks  Sinks
	rng    *rand.Rand
	cell   NumberCell

	number int
	stats  Stats
	// jump force range across the number bounds, for cue pitch
	jumpLo, jumpHi float64

	coyote      float64
	jumpBuffer  float64
	sfxCooldown float64

	grounded    bool
	wasGrounded bool
	jumping     bool
	atApex      bool
	state       State
	fallSpeed   float64 // fastest descent since leaving the ground
	emitting    bool

	deform Deform
}

// New creates a controller. The body is expected at unit collider scale; the
// initial number is applied immediately with feet anchoring. rng may be nil to
// disable cue jitter.
func New(t Tuning, body Body, xf Transform, sinks Sinks, rng *rand.Rand) *Controller {
	c := &Controller{
		tuning: t,
		body:   body,
		xf:     xf,
		sinks:  sinks,
		rng:    rng,
		stats:  Stats{Scale: 1},
		deform: neutralDeform(),
		state:  StateFalling,
	}
	c.jumpLo = JumpForceFor(t.Stats, t.Stats.MaxNumber)
	c.jumpHi = JumpForceFor(t.Stats, t.Stats.MinNumber)
	c.applyNumber(ClampNumber(t.Stats, t.Stats.InitialNumber), false)
	body.SetGravityScale(t.Gravity.DefaultScale)
	return c
}

// Number returns the current clamped number.
func (c *Controller) Number() int { return c.number }

// Stats returns the stats derived from the current number.
func (c *Controller) Stats() Stats { return c.stats }

// State returns the phase computed on the last tick.
func (c *Controller) State() State { return c.state }

// Grounded reports the ground contact from the last tick.
func (c *Controller) Grounded() bool { return c.grounded }

// Jumping reports whether the player is in a jump that has not landed.
func (c *Controller) Jumping() bool { return c.jumping }

// Deform returns the current cosmetic deformation.
func (c *Controller) Deform() Deform { return c.deform }

// Cell returns the observed-number port.
func (c *Controller) Cell() *NumberCell { return &c.cell }

// Timers returns the remaining coyote, jump buffer and sfx cooldown.
func (c *Controller) Timers() (coyote, buffer, cooldown float64) {
	return c.coyote, c.jumpBuffer, c.sfxCooldown
}

// SetTuning swaps the tuning and re-derives stats for the current number.
func (c *Controller) SetTuning(t Tuning) {
	c.tuning = t
	c.jumpLo = JumpForceFor(t.Stats, t.Stats.MaxNumber)
	c.jumpHi = JumpForceFor(t.Stats, t.Stats.MinNumber)
	c.applyNumber(ClampNumber(t.Stats, c.number), false)
}

// SetNumber clamps n and rescales the player when it changed.
func (c *Controller) SetNumber(n int) {
	n = ClampNumber(c.tuning.Stats, n)
	if n == c.number {
		return
	}
	c.applyNumber(n, true)
}

// Interrupt clears jump state after the host moved the player, so a teleport
// does not read as a landing or consume a stale buffered jump.
func (c *Controller) Interrupt() {
	c.coyote = 0
	c.jumpBuffer = 0
	c.jumping = false
	c.atApex = false
	c.fallSpeed = 0
}

func (c *Controller) applyNumber(n int, pop bool) {
	prevScale := c.stats.Scale
	c.number = n
	c.stats = StatsFor(c.tuning.Stats, n)

	c.body.SetMass(c.stats.Mass)
	c.body.SetColliderScale(c.stats.Scale)
	c.anchorFeet(prevScale, c.stats.Scale)

	if pop {
		c.deform.TriggerPop(c.tuning.Deform.ShiftPop)
		c.cue(CueShift, 1, c.tuning.Feedback.VolumeMin)
	}
	c.updateLabel()
	c.applyScale()
}

// anchorFeet shifts the entity so the collider bottom stays put when its
// scale changes from one value to another.
func (c *Controller) anchorFeet(from, to float64) {
	if from == to {
		return
	}
	p := c.xf.Position()
	p.Y += (from - to) * c.bottomLocal()
	c.xf.SetPosition(p)
}

// bottomLocal is the collider bottom relative to the origin at unit scale.
func (c *Controller) bottomLocal() float64 {
	col := c.tuning.Collider
	return col.OffsetY - col.Height/2
}

// Feet returns the world position of the collider's bottom center.
func (c *Controller) Feet() math.Vec2 {
	p := c.xf.Position()
	return math.Vec2{X: p.X, Y: p.Y + c.stats.Scale*c.bottomLocal()}
}

func (c *Controller) updateLabel() {
	if c.sinks.Label == nil {
		return
	}
	lt := c.tuning.Label
	c.sinks.Label.SetText(strconv.Itoa(c.number))
	c.sinks.Label.SetFontSize(lt.BaseFontSize + float64(magnitude(c.number))*lt.FontSizeStep)
	c.sinks.Label.SetTier(TierFor(lt, c.number))
}

// Tick advances the controller by dt seconds. The order matters: stat rescale,
// timers, ground, landing, horizontal, jump, gravity, state, deformation.
func (c *Controller) Tick(dt float64, in Input) {
	if n, ok := c.cell.take(); ok {
		c.SetNumber(n)
	}

	c.countdown(dt)
	if in.JumpPressed {
		c.jumpBuffer = c.tuning.Jump.BufferTime
	}

	c.checkGround()
	c.detectLanding()
	c.moveHorizontal(dt, in.Axis)
	c.tryJump()
	c.selectGravity(in.JumpHeld)
	c.deriveState()
	c.updateDeform(dt)
}

func (c *Controller) countdown(dt float64) {
	c.coyote = gomath.Max(c.coyote-dt, 0)
	c.jumpBuffer = gomath.Max(c.jumpBuffer-dt, 0)
	c.sfxCooldown = gomath.Max(c.sfxCooldown-dt, 0)
}

func (c *Controller) checkGround() {
	col := c.tuning.Collider
	v := c.body.Velocity()

	c.wasGrounded = c.grounded
	overlap := c.body.OverlapGround(c.Feet(), col.GroundCheckRadius*c.stats.Scale, col.GroundFilter)
	// still touching the floor on the way up from a jump does not count
	c.grounded = overlap && !(c.jumping && v.Y > 0)

	if c.grounded {
		c.coyote = c.tuning.Jump.CoyoteTime
	} else if -v.Y > c.fallSpeed {
		c.fallSpeed = -v.Y
	}

	c.atApex = !c.grounded && c.jumping && gomath.Abs(v.Y) < c.tuning.Gravity.ApexThreshold
}

func (c *Controller) detectLanding() {
	if !c.grounded {
		return
	}
	if !c.wasGrounded {
		c.land(c.fallSpeed)
	}
	c.jumping = false
	c.fallSpeed = 0
}

func (c *Controller) land(impact float64) {
	dt := c.tuning.Deform
	t := 0.0
	if dt.LandImpactMax > 0 {
		t = clamp01(impact / dt.LandImpactMax)
	}
	c.deform.Trigger(lerp(1, dt.LandSquash.X, t), lerp(1, dt.LandSquash.Y, t))

	fb := c.tuning.Feedback
	if impact < fb.LandMinImpact {
		return
	}
	c.cue(CueLand, lerp(fb.PitchMax, fb.PitchMin, t), lerp(fb.VolumeMin, fb.VolumeMax, t))
	if c.sinks.Particles != nil {
		c.sinks.Particles.Burst(c.Feet(), fb.LandDustCount)
	}
}

func (c *Controller) moveHorizontal(dt, axis float64) {
	mt := c.tuning.Move
	axis = gomath.Max(-1, gomath.Min(1, axis))
	v := c.body.Velocity()

	speed := c.stats.Speed
	if c.atApex {
		speed += mt.ApexSpeedBonus
	}
	target := axis * speed

	var rate float64
	switch {
	case axis == 0:
		rate = mt.Deceleration
	case gomath.Abs(v.X) > mt.TurnAroundThreshold && sign(axis) != sign(v.X):
		rate = mt.Deceleration * mt.TurnAroundMultiplier
	default:
		rate = mt.Acceleration
	}
	if !c.grounded {
		rate *= mt.AirControlMultiplier
	}

	v.X = moveTowards(v.X, target, rate*dt)
	c.body.SetVelocity(v)
}

func (c *Controller) tryJump() {
	if c.jumpBuffer <= 0 || c.coyote <= 0 {
		return
	}

	v := c.body.Velocity()
	v.Y = 0
	c.body.SetVelocity(v)

	magnitude := c.stats.JumpForce
	if c.tuning.Jump.ScaleImpulseByMass {
		magnitude *= c.body.Mass()
	}
	c.body.ApplyImpulse(up, magnitude)

	c.jumpBuffer = 0
	c.coyote = 0
	c.jumping = true
	c.grounded = false
	c.atApex = false

	js := c.tuning.Deform.JumpStretch
	c.deform.Trigger(js.X, js.Y)

	fb := c.tuning.Feedback
	t := 0.0
	if c.jumpHi > c.jumpLo {
		t = (c.stats.JumpForce - c.jumpLo) / (c.jumpHi - c.jumpLo)
	}
	c.cue(CueJump, lerp(fb.PitchMin, fb.PitchMax, t), fb.VolumeMax)
	if c.sinks.Particles != nil {
		c.sinks.Particles.Burst(c.Feet(), fb.JumpDustCount)
	}
}

func (c *Controller) selectGravity(jumpHeld bool) {
	g := c.tuning.Gravity
	v := c.body.Velocity()
	scale := g.DefaultScale
	switch {
	case c.atApex:
		scale *= g.ApexMultiplier
	case v.Y < 0:
		scale *= g.FallMultiplier
	case v.Y > 0 && !jumpHeld:
		scale *= g.LowJumpMultiplier
	}
	c.body.SetGravityScale(scale)
}

func (c *Controller) deriveState() {
	v := c.body.Velocity()
	switch {
	case c.grounded:
		c.state = StateGrounded
	case c.atApex:
		c.state = StateApex
	case v.Y > 0:
		c.state = StateRising
	default:
		c.state = StateFalling
	}
}

func (c *Controller) updateDeform(dt float64) {
	v := c.body.Velocity()
	lean := 0.0
	if c.stats.Speed > 0 {
		lean = -gomath.Max(-1, gomath.Min(1, v.X/c.stats.Speed)) * c.tuning.Deform.LeanMaxAngle
	}
	c.deform.Update(dt, c.tuning.Deform, lean)
	c.applyScale()

	if c.sinks.Particles != nil {
		emit := c.grounded && gomath.Abs(v.X) > c.tuning.Feedback.DustSpeedThreshold
		if emit != c.emitting {
			c.emitting = emit
			c.sinks.Particles.SetEmissionEnabled(emit)
		}
	}
}

func (c *Controller) applyScale() {
	run := math.Vec2{X: 1, Y: 1}
	if c.grounded && c.stats.Speed > 0 {
		run = RunStretch(c.tuning.Deform.RunStretch, gomath.Abs(c.body.Velocity().X)/c.stats.Speed)
	}
	c.xf.SetScale(c.deform.Compose(c.stats.Scale, run))
	c.xf.SetRotation(c.deform.Lean)
}

// cue plays a one-shot with jitter unless the sfx cooldown is still running.
func (c *Controller) cue(cue Cue, pitch, volume float64) {
	if c.sinks.Audio == nil || c.sfxCooldown > 0 {
		return
	}
	fb := c.tuning.Feedback
	pitch += c.jitter(fb.PitchJitter)
	volume = clamp01(volume + c.jitter(fb.VolumeJitter))
	c.sinks.Audio.PlayOneShot(cue, pitch, volume)
	c.sfxCooldown = fb.SFXCooldown
}

// jitter returns a uniform value in [-amount, amount].
func (c *Controller) jitter(amount float64) float64 {
	if c.rng == nil || amount <= 0 {
		return 0
	}
	return (c.rng.Float64()*2 - 1) * amount
}

func moveTowards(current, target, maxDelta float64) float64 {
	if gomath.Abs(target-current) <= maxDelta {
		return target
	}
	return current + gomath.Copysign(maxDelta, target-current)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
