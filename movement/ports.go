package movement

import (
	"strconv"
	"strings"

	"github.com/yohamta/donburi/features/math"
)

// Body is the physics body the controller drives. Y is up.
type Body interface {
	Velocity() math.Vec2
	SetVelocity(v math.Vec2)
	Mass() float64
	SetMass(m float64)
	GravityScale() float64
	SetGravityScale(s float64)
	// ApplyImpulse changes velocity instantly by dir*magnitude/mass.
	ApplyImpulse(dir math.Vec2, magnitude float64)
	// SetColliderScale resizes the collision volume around the entity origin.
	SetColliderScale(s float64)
	OverlapGround(point math.Vec2, radius float64, filter string) bool
}

// Transform is the entity's render transform.
type Transform interface {
	Position() math.Vec2
	SetPosition(p math.Vec2)
	Scale() math.Vec2
	SetScale(s math.Vec2)
	Rotation() float64
	SetRotation(r float64)
}

// Cue identifies a one-shot sound.
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueShift
)

// AudioSink plays one-shot sounds. Calls are fire-and-forget.
type AudioSink interface {
	PlayOneShot(cue Cue, pitch, volume float64)
}

// ParticleSink receives dust emission.
type ParticleSink interface {
	SetEmissionEnabled(enabled bool)
	Burst(at math.Vec2, count int)
}

// Tier is the color band of the number label.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	}
	return "unknown"
}

// TierFor returns the label band for n.
func TierFor(t LabelTuning, n int) Tier {
	if n < 0 {
		n = -n
	}
	switch {
	case n <= t.LowMax:
		return TierLow
	case n <= t.MidMax:
		return TierMid
	default:
		return TierHigh
	}
}

// LabelSink displays the current number.
type LabelSink interface {
	SetText(text string)
	SetFontSize(size float64)
	SetTier(tier Tier)
}

// Sinks groups the optional outputs. Nil members are skipped.
type Sinks struct {
	Audio     AudioSink
	Particles ParticleSink
	Label     LabelSink
}

// NumberCell is the observed-number input port. Other systems write to it,
// the controller consumes the latest write once per tick.
type NumberCell struct {
	value   int
	pending bool
}

// Write schedules n to be applied on the next tick.
func (c *NumberCell) Write(n int) {
	c.value = n
	c.pending = true
}

// Pending reports whether a write is waiting.
func (c *NumberCell) Pending() bool {
	return c.pending
}

func (c *NumberCell) take() (int, bool) {
	if !c.pending {
		return 0, false
	}
	c.pending = false
	return c.value, true
}

// ParseNumeral reads a displayed numeral such as "7", "-3" or "−3".
func ParseNumeral(text string) (int, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "−", "-"))
	if text == "" {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Input is one tick of player intent.
type Input struct {
	Axis        float64 // -1..1
	JumpPressed bool    // edge on this tick
	JumpHeld    bool
}
