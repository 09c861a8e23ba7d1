package systems

import (
	"github.com/automoto/numeralrun/components"
	"github.com/automoto/numeralrun/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePickups consumes number pickups the player overlaps and writes the
// resulting number to the controller's cell.
func UpdatePickups(ecs *ecs.ECS) {
	playerEntry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	if player.Controller == nil {
		return
	}
	obj := components.Object.Get(playerEntry).Object

	check := obj.Check(0, 0, tags.ResolvPickup)
	if check == nil {
		return
	}

	n, changed := player.Controller.Number(), false
	for _, o := range check.ObjectsByTags(tags.ResolvPickup) {
		if !overlaps(obj.X, obj.Y, obj.W, obj.H, o) {
			continue
		}
		entry, ok := o.Data.(*donburi.Entry)
		if !ok || !entry.Valid() {
			continue
		}
		pickup := components.Pickup.Get(entry)
		if pickup.Consumed {
			continue
		}
		pickup.Consumed = true
		if o.Space != nil {
			o.Space.Remove(o)
		}

		n, changed = applyPickup(n, pickup), true
		logger.WithField("delta", pickup.Delta).WithField("negate", pickup.Negate).Debug("pickup consumed")
	}
	if changed {
		player.Controller.Cell().Write(n)
	}
}

func applyPickup(n int, p *components.PickupData) int {
	if p.Negate {
		return -n
	}
	return n + p.Delta
}
