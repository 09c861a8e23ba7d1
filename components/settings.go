package components

import "github.com/yohamta/donburi"

// SettingsData stores the persisted display and volume options
type SettingsData struct {
	SFXVolume       float64
	AmbienceVolume  float64
	Muted           bool
	Fullscreen      bool
	ResolutionIndex int
}

var Settings = donburi.NewComponentType[SettingsData]()
