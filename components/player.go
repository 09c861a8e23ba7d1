package components

import (
	"github.com/automoto/numeralrun/movement"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Controller *movement.Controller
	// Teleported skips controller integration for the current tick
	Teleported bool
	// Probe is the last ground query, kept for the debug overlay
	Probe struct {
		X, Y, Radius float64
		Hit          bool
	}
}

var Player = donburi.NewComponentType[PlayerData]()

// LabelData is the number label drawn above the player.
type LabelData struct {
	Text     string
	FontSize float64
	Tier     movement.Tier
	// Edit holds externally entered text that is read back into the number
	Edit   string
	Edited bool
}

var Label = donburi.NewComponentType[LabelData]()
