package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/fonts"
	"github.com/automoto/numeralrun/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.Enabled {
		return
	}
	v, ok := viewFor(ecs, screen)
	if !ok {
		return
	}

	if cfg.Debug.ShowColliders {
		drawColliders(ecs, screen, v)
	}

	playerEntry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)

	// Ground probe, green when it hits
	p := player.Probe
	c := color.RGBA{255, 0, 0, 255}
	if p.Hit {
		c = color.RGBA{0, 255, 0, 255}
	}
	x, y, w, h := v.rect(p.X-p.Radius, p.Y-p.Radius, p.Radius*2, p.Radius*2)
	strokeRect(screen, x, y, w, h, c)

	ctl := player.Controller
	if ctl == nil {
		return
	}
	coyote, buffer, cooldown := ctl.Timers()
	body := components.Body.Get(playerEntry)
	lines := []string{
		fmt.Sprintf("state %s grounded %t jumping %t", ctl.State(), ctl.Grounded(), ctl.Jumping()),
		fmt.Sprintf("coyote %.2f buffer %.2f sfx %.2f", coyote, buffer, cooldown),
		fmt.Sprintf("vel %.2f, %.2f mass %.2f", body.Velocity.X, body.Velocity.Y, body.Mass),
	}
	if streamEntry, ok := components.Stream.First(ecs.World); ok {
		if m := components.Stream.Get(streamEntry).Manager; m != nil {
			lines = append(lines, fmt.Sprintf("chunks %d spawned %d destroyed %d next %.1f",
				m.Len(), m.Spawned(), m.Destroyed(), m.NextSpawnX()))
		}
	}

	face := fonts.Small.Get()
	ty := screen.Bounds().Dy() - hudMargin - (len(lines)-1)*10
	for _, line := range lines {
		text.Draw(screen, line, face, hudMargin, ty, cfg.White)
		ty += 10
	}
}

// drawColliders outlines every object in the collision space.
func drawColliders(ecs *ecs.ECS, screen *ebiten.Image, v view) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	for _, obj := range space.Objects() {
		wx, wy, ww, wh := space.ToWorld(obj.X, obj.Y, obj.W, obj.H)
		if !v.visible(wx, wy, ww, wh) {
			continue
		}

		// Determine color based on tags
		c := color.RGBA{0, 255, 255, 255} // Cyan default
		if obj.HasTags(tags.ResolvSolid) {
			c = color.RGBA{100, 100, 100, 255} // Grey
		} else if obj.HasTags(tags.ResolvPlayer) {
			c = color.RGBA{0, 0, 255, 255} // Blue
		} else if obj.HasTags(tags.ResolvPickup) {
			c = color.RGBA{255, 255, 0, 255}
		}

		x, y, w, h := v.rect(wx, wy, ww, wh)
		strokeRect(screen, x, y, w, h, c)
	}
}

func strokeRect(screen *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
}
