package systems

import (
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera advances the camera slide.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	if camera.Follow == nil {
		return
	}
	camera.Update(1.0 / float64(cfg.C.TPS))
}

// ApplyCameraConfig swaps the slide tuning on the scene camera.
func ApplyCameraConfig(e *ecs.ECS) {
	if cameraEntry, ok := components.Camera.First(e.World); ok {
		if camera := components.Camera.Get(cameraEntry); camera.Follow != nil {
			camera.SetConfig(cfg.Camera)
		}
	}
}
