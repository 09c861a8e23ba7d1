package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateSpace(ecs *ecs.ECS, width, height, cellWidth, cellHeight int, originX float64) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{
		Space:   resolv.NewSpace(width, height, cellWidth, cellHeight),
		OriginX: originX,
	})
	return space
}
