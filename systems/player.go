package systems

import (
	"math/rand/v2"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/movement"
	"github.com/automoto/numeralrun/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// AttachController creates the movement controller for a player entry and
// wires its sinks to the ECS. rng drives cue jitter and may be nil.
func AttachController(ecs *ecs.ECS, player *donburi.Entry, rng *rand.Rand) *movement.Controller {
	spaceEntry, _ := components.Space.First(ecs.World)
	sinks := movement.Sinks{
		Audio:     audioSink{ecs: ecs},
		Particles: dustSink{player: player},
		Label:     labelSink{player: player},
	}
	c := movement.New(
		cfg.Feel,
		bodyAdapter{player: player, space: spaceEntry},
		transformAdapter{player: player, space: spaceEntry},
		sinks,
		rng,
	)
	components.Player.Get(player).Controller = c
	return c
}

// UpdatePlayer ticks the movement controller. The tick after a teleport is
// skipped and the controller's jump state is cleared instead.
func UpdatePlayer(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	dt := 1.0 / float64(cfg.C.TPS)

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		if player.Controller == nil {
			return
		}
		if player.Teleported {
			player.Teleported = false
			player.Controller.Interrupt()
			return
		}

		jump := GetAction(input, cfg.ActionJump)
		player.Controller.Tick(dt, movement.Input{
			Axis:        input.Axis,
			JumpPressed: jump.JustPressed,
			JumpHeld:    jump.Pressed,
		})
	})
}

// ApplyFeel swaps the movement tuning on every player controller. Collider
// changes resize the body first, keeping its bottom edge in place.
func ApplyFeel(ecs *ecs.ECS, t movement.Tuning) {
	spaceEntry, _ := components.Space.First(ecs.World)
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		resizeCollider(e, spaceEntry, t.Collider)
		if c := components.Player.Get(e).Controller; c != nil {
			c.SetTuning(t)
		}
	})
}

func resizeCollider(e, spaceEntry *donburi.Entry, col movement.ColliderTuning) {
	body := components.Body.Get(e)
	if body.Width == col.Width && body.Height == col.Height && body.OffsetY == col.OffsetY {
		return
	}
	s := body.ColliderScale
	oldBottom := (body.OffsetY - body.Height/2) * s
	newBottom := (col.OffsetY - col.Height/2) * s
	body.Width, body.Height, body.OffsetY = col.Width, col.Height, col.OffsetY

	components.Transform.Get(e).Position.Y += oldBottom - newBottom
	syncObject(e, spaceEntry)
}
