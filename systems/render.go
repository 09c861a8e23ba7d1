package systems

import (
	"image/color"
	"math"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/fonts"
	"github.com/automoto/numeralrun/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

var (
	drawOp    = &ebiten.DrawImageOptions{}
	unitImage *ebiten.Image
)

// view maps world units (Y up) to screen pixels around the camera center.
type view struct {
	center        dmath.Vec2
	width, height float64
	ppu           float64
}

func viewFor(e *ecs.ECS, screen *ebiten.Image) (view, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view{}, false
	}
	camera := components.Camera.Get(cameraEntry)
	if camera.Follow == nil {
		return view{}, false
	}
	return view{
		center: camera.Position(),
		width:  float64(screen.Bounds().Dx()),
		height: float64(screen.Bounds().Dy()),
		ppu:    cfg.Physics.PixelsPerUnit,
	}, true
}

func (v view) toScreen(x, y float64) (float64, float64) {
	return (x-v.center.X)*v.ppu + v.width/2, (v.center.Y-y)*v.ppu + v.height/2
}

// rect returns the screen rectangle of a world box with bottom-left corner x, y.
func (v view) rect(x, y, w, h float64) (sx, sy, sw, sh float32) {
	left, top := v.toScreen(x, y+h)
	return float32(left), float32(top), float32(w * v.ppu), float32(h * v.ppu)
}

func (v view) visible(x, y, w, h float64) bool {
	sx, sy, sw, sh := v.rect(x, y, w, h)
	return sx+sw >= 0 && sy+sh >= 0 && float64(sx) <= v.width && float64(sy) <= v.height
}

// DrawLevel renders the solids and remaining pickups of every live chunk.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.UI.Background)
	v, ok := viewFor(e, screen)
	if !ok {
		return
	}

	components.Solid.Each(e.World, func(entry *donburi.Entry) {
		s := components.Solid.Get(entry)
		if !v.visible(s.X, s.Y, s.Width, s.Height) {
			return
		}
		x, y, w, h := v.rect(s.X, s.Y, s.Width, s.Height)
		vector.FillRect(screen, x, y, w, h, cfg.UI.Solid, false)
	})

	tags.Pickup.Each(e.World, func(entry *donburi.Entry) {
		p := components.Pickup.Get(entry)
		if p.Consumed || !v.visible(p.X, p.Y, p.Width, p.Height) {
			return
		}
		x, y, w, h := v.rect(p.X, p.Y, p.Width, p.Height)
		vector.FillRect(screen, x, y, w, h, cfg.UI.Pickup, false)
		label := pickupLabel(p)
		face := fonts.Small.Get()
		b := text.BoundString(face, label)
		text.Draw(screen, label, face, int(x+w/2)-b.Dx()/2, int(y)-2, cfg.UI.Pickup)
	})
}

func pickupLabel(p *components.PickupData) string {
	if p.Negate {
		return "±"
	}
	if p.Delta > 0 {
		return "+" + formatNumeral(p.Delta)
	}
	return formatNumeral(p.Delta)
}

// DrawDust renders the player's dust particles.
func DrawDust(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := viewFor(e, screen)
	if !ok {
		return
	}
	size := float32(cfg.Dust.Size)
	base := cfg.UI.Dust
	components.Dust.Each(e.World, func(entry *donburi.Entry) {
		for _, p := range components.Dust.Get(entry).Particles {
			x, y := v.toScreen(p.Position.X, p.Position.Y)
			c := base
			if cfg.Dust.TTL > 0 {
				c.A = uint8(float64(base.A) * math.Min(1, p.TTL/cfg.Dust.TTL))
			}
			vector.FillRect(screen, float32(x)-size/2, float32(y)-size/2, size, size, c, false)
		}
	})
}

// DrawPlayer renders the player as a rectangle deformed by its transform,
// pivoting on the collider's bottom center.
func DrawPlayer(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := viewFor(e, screen)
	if !ok {
		return
	}
	if unitImage == nil {
		unitImage = ebiten.NewImage(1, 1)
		unitImage.Fill(color.White)
	}

	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		body := components.Body.Get(entry)
		xf := components.Transform.Get(entry)
		x, y, w, _ := body.Box(xf.Position)
		fx, fy := v.toScreen(x+w/2, y)

		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()
		drawOp.GeoM.Translate(-0.5, -1)
		drawOp.GeoM.Scale(body.Width*xf.Scale.X*v.ppu, body.Height*xf.Scale.Y*v.ppu)
		// positive rotation leans counter-clockwise in world space
		drawOp.GeoM.Rotate(-xf.Rotation * math.Pi / 180)
		drawOp.GeoM.Translate(fx, fy)
		drawOp.ColorScale.ScaleWithColor(cfg.UI.Player)
		screen.DrawImage(unitImage, drawOp)
	})
}

// DrawLabel renders the number above the player in its tier color.
func DrawLabel(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := viewFor(e, screen)
	if !ok {
		return
	}
	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		label := components.Label.Get(entry)
		if label.Text == "" {
			return
		}
		body := components.Body.Get(entry)
		x, y, w, h := body.Box(components.Transform.Get(entry).Position)
		sx, sy := v.toScreen(x+w/2, y+h+cfg.UI.LabelOffset)

		face := fonts.Label(label.FontSize)
		b := text.BoundString(face, label.Text)
		clr, ok := cfg.UI.TierColors[label.Tier]
		if !ok {
			clr = cfg.White
		}
		text.Draw(screen, label.Text, face, int(sx)-b.Dx()/2, int(sy), clr)
	})
}

// DrawLetterbox covers the screen outside the current chunk's width.
func DrawLetterbox(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := viewFor(e, screen)
	if !ok {
		return
	}
	half := cfg.Level.ChunkWidth / 2 * v.ppu
	bar := float32(v.width/2 - half)
	if bar <= 0 {
		return
	}
	vector.FillRect(screen, 0, 0, bar, float32(v.height), cfg.UI.LetterBox, false)
	vector.FillRect(screen, float32(v.width)-bar, 0, bar, float32(v.height), cfg.UI.LetterBox, false)
}
