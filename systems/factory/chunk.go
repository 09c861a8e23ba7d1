package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/assets"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreateChunk instantiates tpl centered horizontally on origin, with the
// template's bottom edge at origin.Y.
func CreateChunk(ecs *ecs.ECS, template int, tpl assets.ChunkTemplate, origin math.Vec2) *donburi.Entry {
	chunk := archetypes.Chunk.Spawn(ecs)
	left := math.Vec2{X: origin.X - cfg.Level.ChunkWidth/2, Y: origin.Y}
	data := components.ChunkData{
		Template: template,
		Name:     tpl.Name,
		Origin:   origin,
		Width:    tpl.Width,
	}

	for _, s := range tpl.Solids {
		wall := CreateWall(ecs, left.X+s.X, left.Y+s.Y, s.Width, s.Height)
		data.Children = append(data.Children, wall)
	}

	for _, p := range tpl.Pickups {
		pickup := CreatePickup(ecs, components.PickupData{
			X:      left.X + p.X,
			Y:      left.Y + p.Y,
			Width:  p.Width,
			Height: p.Height,
			Delta:  p.Delta,
			Negate: p.Negate,
		})
		data.Children = append(data.Children, pickup)
	}

	if tpl.HasSpawn {
		data.Spawn = math.Vec2{X: left.X + tpl.Spawn.X, Y: left.Y + tpl.Spawn.Y}
		data.HasSpawn = true
	}

	if sound, ok := cfg.Sound.Ambience[tpl.Ambience]; ok && tpl.HasAmbience {
		node := archetypes.Ambience.Spawn(ecs)
		components.Ambience.SetValue(node, components.AmbienceData{
			Sound:    sound,
			Position: math.Vec2{X: left.X + tpl.AmbienceAt.X, Y: left.Y + tpl.AmbienceAt.Y},
			Enabled:  true,
		})
		data.Ambience = node
		data.Children = append(data.Children, node)
	}

	components.Chunk.SetValue(chunk, data)
	return chunk
}

// DestroyChunk removes the chunk, its children and their collision objects.
func DestroyChunk(ecs *ecs.ECS, chunk *donburi.Entry) {
	if !chunk.Valid() {
		return
	}
	data := components.Chunk.Get(chunk)

	spaceEntry, hasSpace := components.Space.First(ecs.World)
	for _, child := range data.Children {
		if !child.Valid() {
			continue
		}
		if hasSpace && child.HasComponent(components.Object) {
			components.Space.Get(spaceEntry).Remove(components.Object.Get(child).Object)
		}
		ecs.World.Remove(child.Entity())
	}
	ecs.World.Remove(chunk.Entity())
}
