package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Wall     = donburi.NewTag().SetName("Wall")
	Chunk    = donburi.NewTag().SetName("Chunk")
	Pickup   = donburi.NewTag().SetName("Pickup")
	Ambience = donburi.NewTag().SetName("Ambience")
)

// Resolv tags for physics collision
const (
	ResolvSolid  = "solid"
	ResolvGround = "ground"
	ResolvPlayer = "Player"
	ResolvPickup = "pickup"
)
