package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/components"
	"github.com/automoto/numeralrun/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePickup adds a number pickup. Its resolv object only serves overlap
// checks and never blocks movement.
func CreatePickup(ecs *ecs.ECS, data components.PickupData) *donburi.Entry {
	pickup := archetypes.Pickup.Spawn(ecs)
	components.Pickup.SetValue(pickup, data)

	obj := resolv.NewObject(0, 0, 1, 1, tags.ResolvPickup)
	obj.Data = pickup
	components.Object.SetValue(pickup, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space := components.Space.Get(spaceEntry)
		space.Add(obj)
		space.Place(obj, data.X, data.Y, data.Width, data.Height)
	}
	return pickup
}
