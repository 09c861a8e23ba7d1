package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionRestart
	ActionNumberUp
	ActionNumberDown
	ActionNegate
	ActionMute
	ActionFullscreen
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Bindings: map[ActionID]InputBinding{
			ActionMoveLeft: {
				Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftLeft,
				},
			},
			ActionMoveRight: {
				Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftRight,
				},
			},
			ActionJump: {
				Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyX, ebiten.KeyW, ebiten.KeyUp},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightBottom,
				},
			},
			ActionRestart: {
				Keys: []ebiten.Key{ebiten.KeyR},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterLeft,
				},
			},
			// Number keys only act in debug mode
			ActionNumberUp: {
				Keys: []ebiten.Key{ebiten.KeyE, ebiten.KeyEqual},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopRight,
				},
			},
			ActionNumberDown: {
				Keys: []ebiten.Key{ebiten.KeyQ, ebiten.KeyMinus},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopLeft,
				},
			},
			ActionNegate: {
				Keys: []ebiten.Key{ebiten.KeyN},
			},
			ActionMute: {
				Keys: []ebiten.Key{ebiten.KeyM},
			},
			ActionFullscreen: {
				Keys: []ebiten.Key{ebiten.KeyF11},
			},
		},
	}
}
