package config

// Resolution represents a display resolution option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// SettingsConfig contains the persisted display and volume options
type SettingsConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int
	VolumeSteps            []float64
	AppName                string // gdata storage namespace
}

// Settings is the global settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		Resolutions: []Resolution{
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
			{Width: 2560, Height: 1440, Label: "2560 x 1440"},
		},
		DefaultResolutionIndex: 0,
		VolumeSteps:            []float64{0, 0.25, 0.5, 0.75, 1.0},
		AppName:                "numeralrun",
	}
}

// ResolutionAt returns the resolution for index, falling back to the default.
func (s SettingsConfig) ResolutionAt(index int) Resolution {
	if index < 0 || index >= len(s.Resolutions) {
		index = s.DefaultResolutionIndex
	}
	return s.Resolutions[index]
}
