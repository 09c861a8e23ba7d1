package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/components"
	"github.com/automoto/numeralrun/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateWall adds a solid box in world units with its bottom-left corner at x, y.
// Walls are also ground for the player's feet probe.
func CreateWall(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)
	components.Solid.SetValue(wall, components.SolidData{X: x, Y: y, Width: w, Height: h})

	// Create collision object
	obj := resolv.NewObject(0, 0, 1, 1, tags.ResolvSolid, tags.ResolvGround)
	obj.Data = wall // Link for O(1) lookup
	components.Object.SetValue(wall, components.ObjectData{Object: obj})

	// Add to space if it exists
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space := components.Space.Get(spaceEntry)
		space.Add(obj)
		space.Place(obj, x, y, w, h)
	}

	return wall
}
