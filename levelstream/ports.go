package levelstream

import "github.com/yohamta/donburi/features/math"

// Factory instantiates chunk templates.
type Factory interface {
	Templates() int
	Spawn(template int, origin math.Vec2) (Instance, error)
}

// Instance is one spawned chunk. Handles are resolved once at spawn time.
type Instance interface {
	SpawnAnchor() (math.Vec2, bool)
	// BackgroundAudio may return nil when the chunk has no ambience.
	BackgroundAudio() AudioNode
	Destroy()
}

// AudioNode is a chunk's background ambience.
type AudioNode interface {
	SetEnabled(enabled bool)
}

// Player is the entity the manager relocates on first spawn and restart.
type Player interface {
	Position() math.Vec2
	// Teleport sets the position and zeroes velocity.
	Teleport(p math.Vec2)
}

// Camera receives section transitions.
type Camera interface {
	SlideToTarget(p math.Vec2)
}
