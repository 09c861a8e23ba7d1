package factory

import (
	"github.com/automoto/numeralrun/archetypes"
	"github.com/automoto/numeralrun/camera"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

func CreateCamera(ecs *ecs.ECS, start math.Vec2) *donburi.Entry {
	e := archetypes.Camera.Spawn(ecs)
	components.Camera.SetValue(e, components.CameraData{Follow: camera.New(cfg.Camera, start)})
	return e
}
