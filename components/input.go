package components

import (
	cfg "github.com/automoto/numeralrun/config"
	"github.com/yohamta/donburi"
)

// InputMethod represents the type of input device being used
type InputMethod int

const (
	InputKeyboard InputMethod = iota
	InputGamepad
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
type InputData struct {
	Current         [cfg.ActionCount]bool
	Previous        [cfg.ActionCount]bool
	Axis            float64 // horizontal, -1..1
	LastInputMethod InputMethod
}

var Input = donburi.NewComponentType[InputData]()

// State returns the temporal state of action.
func (d *InputData) State(action cfg.ActionID) ActionState {
	cur, prev := d.Current[action], d.Previous[action]
	return ActionState{
		Pressed:      cur,
		JustPressed:  cur && !prev,
		JustReleased: !cur && prev,
	}
}
