package archetypes

import (
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Body,
		components.Transform,
		components.Label,
		components.Dust,
	)
	Space = newArchetype(
		components.Space,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
		components.Solid,
	)
	Chunk = newArchetype(
		tags.Chunk,
		components.Chunk,
	)
	Pickup = newArchetype(
		tags.Pickup,
		components.Pickup,
		components.Object,
	)
	Ambience = newArchetype(
		tags.Ambience,
		components.Ambience,
	)
	Stream = newArchetype(
		components.Stream,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Input = newArchetype(
		components.Input,
	)
	Audio = newArchetype(
		components.Audio,
	)
	Settings = newArchetype(
		components.Settings,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(all, cs...)...,
	))
	return e
}
