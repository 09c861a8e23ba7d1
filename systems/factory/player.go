package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreatePlayer spawns the player body at unit collider scale. The movement
// controller is attached separately by systems.AttachController.
func CreatePlayer(ecs *ecs.ECS, at math.Vec2) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	col := cfg.Feel.Collider
	components.Transform.SetValue(player, components.TransformData{
		Position: at,
		Scale:    math.Vec2{X: 1, Y: 1},
	})
	components.Body.SetValue(player, components.BodyData{
		Mass:          cfg.Feel.Stats.InitialMass,
		GravityScale:  cfg.Feel.Gravity.DefaultScale,
		ColliderScale: 1,
		Width:         col.Width,
		Height:        col.Height,
		OffsetY:       col.OffsetY,
	})
	components.Label.SetValue(player, components.LabelData{
		FontSize: cfg.Feel.Label.BaseFontSize,
	})
	components.Dust.SetValue(player, components.DustData{
		Particles: make([]components.DustParticle, 0, cfg.Dust.MaxParticles),
	})

	obj := resolv.NewObject(0, 0, 1, 1, tags.ResolvPlayer)
	obj.Data = player
	components.Object.SetValue(player, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space := components.Space.Get(spaceEntry)
		body := components.Body.Get(player)
		x, y, w, h := body.Box(at)
		space.Add(obj)
		space.Place(obj, x, y, w, h)
	}

	return player
}
