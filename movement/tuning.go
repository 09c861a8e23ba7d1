package movement

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi/features/math"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("invalid movement tuning")

// Tuning holds every feel constant the controller reads. Times are seconds,
// distances are world units, angles are radians.
type Tuning struct {
	Stats    StatTuning     `yaml:"stats"`
	Move     MoveTuning     `yaml:"move"`
	Jump     JumpTuning     `yaml:"jump"`
	Gravity  GravityTuning  `yaml:"gravity"`
	Collider ColliderTuning `yaml:"collider"`
	Deform   DeformTuning   `yaml:"deform"`
	Feedback FeedbackTuning `yaml:"feedback"`
	Label    LabelTuning    `yaml:"label"`
}

// StatTuning drives the number-to-stat curves.
type StatTuning struct {
	MinNumber     int `yaml:"minNumber"`
	MaxNumber     int `yaml:"maxNumber"`
	InitialNumber int `yaml:"initialNumber"`

	BaseSpeed       float64 `yaml:"baseSpeed"`
	SpeedMultiplier float64 `yaml:"speedMultiplier"`

	BaseJumpForce float64 `yaml:"baseJumpForce"`
	JumpPenalty   float64 `yaml:"jumpPenalty"` // per step above 1
	JumpBonus     float64 `yaml:"jumpBonus"`   // per step below -1
	MinJumpForce  float64 `yaml:"minJumpForce"`

	InitialMass    float64 `yaml:"initialMass"`
	MassMultiplier float64 `yaml:"massMultiplier"`

	ScaleIncrement float64 `yaml:"scaleIncrement"`
	MinScale       float64 `yaml:"minScale"`
}

// MoveTuning controls horizontal acceleration.
type MoveTuning struct {
	Acceleration         float64 `yaml:"acceleration"`
	Deceleration         float64 `yaml:"deceleration"`
	TurnAroundMultiplier float64 `yaml:"turnAroundMultiplier"`
	TurnAroundThreshold  float64 `yaml:"turnAroundThreshold"` // min |vx| before a reversal counts as a skid
	AirControlMultiplier float64 `yaml:"airControlMultiplier"`
	ApexSpeedBonus       float64 `yaml:"apexSpeedBonus"`
}

// JumpTuning controls jump buffering and coyote time.
type JumpTuning struct {
	BufferTime         float64 `yaml:"bufferTime"`
	CoyoteTime         float64 `yaml:"coyoteTime"`
	ScaleImpulseByMass bool    `yaml:"scaleImpulseByMass"`
}

// GravityTuning selects the gravity scale per airborne phase.
type GravityTuning struct {
	DefaultScale      float64 `yaml:"defaultScale"`
	FallMultiplier    float64 `yaml:"fallMultiplier"`
	LowJumpMultiplier float64 `yaml:"lowJumpMultiplier"`
	ApexMultiplier    float64 `yaml:"apexMultiplier"`
	ApexThreshold     float64 `yaml:"apexThreshold"` // |vy| below this counts as apex
}

// ColliderTuning describes the unscaled collision box relative to the entity origin.
type ColliderTuning struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	OffsetY           float64 `yaml:"offsetY"`
	GroundCheckRadius float64 `yaml:"groundCheckRadius"`
	GroundFilter      string  `yaml:"groundFilter"`
}

// DeformTuning controls the cosmetic squash, stretch, lean and pop.
type DeformTuning struct {
	ReturnRate    float64   `yaml:"returnRate"` // exponential rate toward neutral, 1/s
	JumpStretch   math.Vec2 `yaml:"jumpStretch"`
	LandSquash    math.Vec2 `yaml:"landSquash"` // applied in full at LandImpactMax
	LandImpactMax float64   `yaml:"landImpactMax"`
	RunStretch    float64   `yaml:"runStretch"`
	LeanMaxAngle  float64   `yaml:"leanMaxAngle"`
	LeanRate      float64   `yaml:"leanRate"`
	ShiftPop      float64   `yaml:"shiftPop"`
	PopReturnRate float64   `yaml:"popReturnRate"`
}

// FeedbackTuning controls audio and dust cues.
type FeedbackTuning struct {
	PitchMin           float64 `yaml:"pitchMin"`
	PitchMax           float64 `yaml:"pitchMax"`
	PitchJitter        float64 `yaml:"pitchJitter"`
	VolumeMin          float64 `yaml:"volumeMin"`
	VolumeMax          float64 `yaml:"volumeMax"`
	VolumeJitter       float64 `yaml:"volumeJitter"`
	SFXCooldown        float64 `yaml:"sfxCooldown"`
	LandMinImpact      float64 `yaml:"landMinImpact"`
	DustSpeedThreshold float64 `yaml:"dustSpeedThreshold"`
	JumpDustCount      int     `yaml:"jumpDustCount"`
	LandDustCount      int     `yaml:"landDustCount"`
}

// LabelTuning controls the number label.
type LabelTuning struct {
	BaseFontSize float64 `yaml:"baseFontSize"`
	FontSizeStep float64 `yaml:"fontSizeStep"`
	LowMax       int     `yaml:"lowMax"` // |n| <= LowMax is TierLow
	MidMax       int     `yaml:"midMax"` // |n| <= MidMax is TierMid
}

// DefaultTuning returns the shipped feel.
func DefaultTuning() Tuning {
	return Tuning{
		Stats: StatTuning{
			MinNumber:     -9,
			MaxNumber:     9,
			InitialNumber: 1,

			BaseSpeed:       7.0,
			SpeedMultiplier: 0.35,

			BaseJumpForce: 13.0,
			JumpPenalty:   0.9, // 9 -> 5.8
			JumpBonus:     0.6, // -9 -> 17.8
			MinJumpForce:  1.0,

			InitialMass:    1.0,
			MassMultiplier: 0.15,

			ScaleIncrement: 0.1,
			MinScale:       0.1,
		},
		Move: MoveTuning{
			Acceleration:         60.0,
			Deceleration:         45.0,
			TurnAroundMultiplier: 2.0,
			TurnAroundThreshold:  0.5,
			AirControlMultiplier: 0.65,
			ApexSpeedBonus:       1.5,
		},
		Jump: JumpTuning{
			BufferTime:         0.15,
			CoyoteTime:         0.12,
			ScaleImpulseByMass: true,
		},
		Gravity: GravityTuning{
			DefaultScale:      1.0,
			FallMultiplier:    1.8,
			LowJumpMultiplier: 2.2,
			ApexMultiplier:    0.45,
			ApexThreshold:     1.2,
		},
		Collider: ColliderTuning{
			Width:             0.9,
			Height:            1.0,
			OffsetY:           0,
			GroundCheckRadius: 0.08,
			GroundFilter:      "ground",
		},
		Deform: DeformTuning{
			ReturnRate:    12.0,
			JumpStretch:   math.Vec2{X: 0.75, Y: 1.3},
			LandSquash:    math.Vec2{X: 1.35, Y: 0.7},
			LandImpactMax: 25.0,
			RunStretch:    0.08,
			LeanMaxAngle:  0.12,
			LeanRate:      10.0,
			ShiftPop:      1.25,
			PopReturnRate: 8.0,
		},
		Feedback: FeedbackTuning{
			PitchMin:           0.8,
			PitchMax:           1.3,
			PitchJitter:        0.05,
			VolumeMin:          0.35,
			VolumeMax:          1.0,
			VolumeJitter:       0.05,
			SFXCooldown:        0.08,
			LandMinImpact:      4.0,
			DustSpeedThreshold: 2.0,
			JumpDustCount:      6,
			LandDustCount:      8,
		},
		Label: LabelTuning{
			BaseFontSize: 12,
			FontSizeStep: 1.5,
			LowMax:       3,
			MidMax:       6,
		},
	}
}

// Validate reports values the stat curves cannot work with.
func (t Tuning) Validate() error {
	s := t.Stats
	switch {
	case s.MinNumber > s.MaxNumber:
		return fmt.Errorf("%w: number bounds [%d, %d]", ErrInvalidTuning, s.MinNumber, s.MaxNumber)
	case s.InitialMass <= 0:
		return fmt.Errorf("%w: initial mass %v must be positive", ErrInvalidTuning, s.InitialMass)
	case s.MassMultiplier < 0:
		return fmt.Errorf("%w: mass multiplier %v must not be negative", ErrInvalidTuning, s.MassMultiplier)
	case s.MinJumpForce < 1:
		return fmt.Errorf("%w: min jump force %v below 1", ErrInvalidTuning, s.MinJumpForce)
	case s.MinScale <= 0:
		return fmt.Errorf("%w: min scale %v must be positive", ErrInvalidTuning, s.MinScale)
	case t.Collider.Height <= 0 || t.Collider.Width <= 0:
		return fmt.Errorf("%w: collider %vx%v", ErrInvalidTuning, t.Collider.Width, t.Collider.Height)
	case t.Jump.BufferTime < 0 || t.Jump.CoyoteTime < 0:
		return fmt.Errorf("%w: negative jump window", ErrInvalidTuning)
	}
	return nil
}
