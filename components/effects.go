package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// DustParticle is one puff of dust. World units, Y up.
type DustParticle struct {
	Position math.Vec2
	Velocity math.Vec2
	TTL      float64 // seconds remaining
}

// DustData is the player's dust emitter.
type DustData struct {
	Particles []DustParticle
	Emitting  bool
	// Fractional particles carried between ticks while emitting
	Carry float64
}

var Dust = donburi.NewComponentType[DustData]()
