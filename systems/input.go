package systems

import (
	"math"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls raw input and updates the InputComponent.
// Must run BEFORE UpdatePlayer in the system order.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed bool
	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
				}
			}
		}
	}

	analog := readAnalogStick(gamepadIDs)
	if analog != 0 {
		gamepadUsed = true
	}
	input.Axis = inputAxis(input.Current[cfg.ActionMoveLeft], input.Current[cfg.ActionMoveRight], analog)

	// Gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = components.InputGamepad
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

// readAnalogStick returns the strongest left stick deflection past the deadzone.
func readAnalogStick(gamepads []ebiten.GamepadID) float64 {
	deadzone := cfg.Input.AnalogDeadzone
	var best float64
	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(h) > deadzone && math.Abs(h) > math.Abs(best) {
			best = h
		}
	}
	return best
}

// inputAxis merges digital directions with an analog value. Opposing
// directions cancel; the analog stick wins when it is deflected.
func inputAxis(left, right bool, analog float64) float64 {
	if analog != 0 {
		return math.Max(-1, math.Min(1, analog))
	}
	var axis float64
	if left {
		axis--
	}
	if right {
		axis++
	}
	return axis
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
		// Zero-value InputData is correct (all bools false)
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	return input.State(id)
}
