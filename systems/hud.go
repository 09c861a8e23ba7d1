package systems

import (
	"fmt"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/fonts"
	"github.com/automoto/numeralrun/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudLineHeight = 14
)

// DrawHUD renders the section counter, best section and current number in
// the top-left corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	streamEntry, ok := components.Stream.First(ecs.World)
	if !ok {
		return
	}
	stream := components.Stream.Get(streamEntry)
	if stream.Manager == nil {
		return
	}

	face := fonts.Regular.Get()
	y := hudMargin + hudLineHeight
	text.Draw(screen, fmt.Sprintf("Section %d", stream.Manager.Section()), face, hudMargin, y, cfg.UI.HUDColor)
	y += hudLineHeight
	text.Draw(screen, fmt.Sprintf("Best %d", stream.BestSection), face, hudMargin, y, cfg.UI.HUDColor)

	if playerEntry, ok := tags.Player.First(ecs.World); ok {
		if c := components.Player.Get(playerEntry).Controller; c != nil {
			y += hudLineHeight
			text.Draw(screen, "n = "+formatNumeral(c.Number()), face, hudMargin, y, cfg.UI.HUDColor)
		}
	}

	if settingsEntry, ok := components.Settings.First(ecs.World); ok && components.Settings.Get(settingsEntry).Muted {
		small := fonts.Small.Get()
		b := text.BoundString(small, "muted")
		text.Draw(screen, "muted", small, screen.Bounds().Dx()-hudMargin-b.Dx(), hudMargin+hudLineHeight, cfg.UI.HUDColor)
	}
}
