package systems

import (
	"strconv"
	"strings"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/movement"
	"github.com/automoto/numeralrun/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// labelSink writes the controller's label output to LabelData.
type labelSink struct {
	player *donburi.Entry
}

func (l labelSink) SetText(text string) { components.Label.Get(l.player).Text = text }

func (l labelSink) SetFontSize(size float64) { components.Label.Get(l.player).FontSize = size }

func (l labelSink) SetTier(tier movement.Tier) { components.Label.Get(l.player).Tier = tier }

// UpdateLabel reads edited label text back into the controller's number
// cell. In debug mode the number keys edit the label.
func UpdateLabel(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		label := components.Label.Get(e)
		if cfg.Debug.Enabled {
			editLabel(label, input)
		}
		if !label.Edited || player.Controller == nil {
			return
		}
		label.Edited = false

		n, ok := movement.ParseNumeral(label.Edit)
		if !ok {
			logger.WithField("text", label.Edit).Warn("label edit is not a numeral")
			return
		}
		player.Controller.Cell().Write(n)
	})
}

// editLabel applies the debug number keys to the displayed numeral.
func editLabel(label *components.LabelData, input *components.InputData) {
	n, ok := movement.ParseNumeral(label.Text)
	if !ok {
		return
	}
	switch {
	case GetAction(input, cfg.ActionNumberUp).JustPressed:
		n++
	case GetAction(input, cfg.ActionNumberDown).JustPressed:
		n--
	case GetAction(input, cfg.ActionNegate).JustPressed:
		n = -n
	default:
		return
	}
	label.Edit = formatNumeral(n)
	label.Edited = true
}

// formatNumeral renders n the way a text label displays it, with a
// typographic minus sign.
func formatNumeral(n int) string {
	return strings.Replace(strconv.Itoa(n), "-", "−", 1)
}
