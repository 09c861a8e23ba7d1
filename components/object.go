package components

import (
	cfg "github.com/automoto/numeralrun/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// SpaceData is the collision space. The space is a fixed pixel grid, Y down;
// OriginX is the world X of pixel column 0 and moves when the space rebases.
type SpaceData struct {
	*resolv.Space
	OriginX float64
}

var Space = donburi.NewComponentType[SpaceData]()

// ToPixels converts a world box with bottom-left corner x, y to the space's
// top-left pixel rectangle.
func (s *SpaceData) ToPixels(x, y, w, h float64) (px, py, pw, ph float64) {
	ppu := cfg.Physics.PixelsPerUnit
	return (x - s.OriginX) * ppu, (cfg.Physics.SpaceTop - (y + h)) * ppu, w * ppu, h * ppu
}

// ToWorld converts a pixel rectangle back to a world box, bottom-left corner.
func (s *SpaceData) ToWorld(px, py, pw, ph float64) (x, y, w, h float64) {
	ppu := cfg.Physics.PixelsPerUnit
	w, h = pw/ppu, ph/ppu
	return px/ppu + s.OriginX, cfg.Physics.SpaceTop - py/ppu - h, w, h
}

// Place moves obj to the world box and refreshes its cells.
func (s *SpaceData) Place(obj *resolv.Object, x, y, w, h float64) {
	px, py, pw, ph := s.ToPixels(x, y, w, h)
	if obj.W != pw || obj.H != ph {
		obj.W, obj.H = pw, ph
		obj.SetShape(resolv.NewRectangle(0, 0, pw, ph))
	}
	obj.X, obj.Y = px, py
	obj.Update()
}
