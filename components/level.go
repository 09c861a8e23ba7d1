package components

import (
	"github.com/automoto/numeralrun/levelstream"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// StreamData holds the level stream manager (singleton component).
type StreamData struct {
	Manager *levelstream.Manager
	// BestSection is the furthest section ever reached, loaded from save data
	BestSection int
	Restarts    int
}

var Stream = donburi.NewComponentType[StreamData]()

// ChunkData is a spawned chunk. Children are destroyed with it.
type ChunkData struct {
	Template int
	Name     string
	Origin   math.Vec2
	Width    float64
	Children []*donburi.Entry
	Spawn    math.Vec2
	HasSpawn bool
	Ambience *donburi.Entry
}

var Chunk = donburi.NewComponentType[ChunkData]()

// SolidData is the world-space box of a solid, kept alongside its resolv object.
type SolidData struct {
	X, Y, Width, Height float64
}

var Solid = donburi.NewComponentType[SolidData]()

// PickupData changes the player's number on contact.
type PickupData struct {
	X, Y, Width, Height float64
	Delta               int
	Negate              bool
	Consumed            bool
}

var Pickup = donburi.NewComponentType[PickupData]()
