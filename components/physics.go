package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// BodyData is the simulated body of a dynamic entity. World units, Y up.
type BodyData struct {
	Velocity      math.Vec2
	Mass          float64
	GravityScale  float64
	ColliderScale float64

	// Unscaled collider around the entity origin
	Width   float64
	Height  float64
	OffsetY float64
}

var Body = donburi.NewComponentType[BodyData]()

// TransformData is the render transform of an entity.
type TransformData struct {
	Position math.Vec2
	Scale    math.Vec2
	Rotation float64
}

var Transform = donburi.NewComponentType[TransformData]()

// Box returns the scaled collider for an origin at pos as a world box,
// bottom-left corner.
func (b *BodyData) Box(pos math.Vec2) (x, y, w, h float64) {
	s := b.ColliderScale
	w, h = b.Width*s, b.Height*s
	return pos.X - w/2, pos.Y + b.OffsetY*s - h/2, w, h
}
