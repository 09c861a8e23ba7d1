package components

import (
	"github.com/automoto/numeralrun/camera"
	"github.com/yohamta/donburi"
)

type CameraData struct {
	*camera.Follow
}

var Camera = donburi.NewComponentType[CameraData]()
