package systems

import (
	"math"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// contactEpsilon keeps touching faces from counting as overlap, in pixels.
const contactEpsilon = 0.01

// UpdatePhysics integrates gravity and velocity for the player and resolves
// it against solids, horizontal first.
func UpdatePhysics(ecs *ecs.ECS) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	dt := 1.0 / float64(cfg.C.TPS)

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		stepBody(e, spaceEntry, dt)
	})

	if player, ok := tags.Player.First(ecs.World); ok {
		rebaseSpace(components.Space.Get(spaceEntry), components.Object.Get(player).Object)
	}
}

func stepBody(e, spaceEntry *donburi.Entry, dt float64) {
	p := cfg.Physics
	body := components.Body.Get(e)
	space := components.Space.Get(spaceEntry)
	obj := components.Object.Get(e).Object

	body.Velocity.Y += p.Gravity * body.GravityScale * dt
	body.Velocity.Y = math.Max(-p.MaxFallSpeed, math.Min(p.MaxRiseSpeed, body.Velocity.Y))

	syncObject(e, spaceEntry)

	dx, hitX := sweepX(obj, body.Velocity.X*dt*p.PixelsPerUnit)
	if hitX {
		body.Velocity.X = 0
	}
	obj.X += dx

	// pixel space is Y down
	dy, hitY := sweepY(obj, -body.Velocity.Y*dt*p.PixelsPerUnit)
	if hitY {
		body.Velocity.Y = 0
	}
	obj.Y += dy
	obj.Update()

	x, y, w, h := space.ToWorld(obj.X, obj.Y, obj.W, obj.H)
	xf := components.Transform.Get(e)
	xf.Position = dmath.Vec2{
		X: x + w/2,
		Y: y + h/2 - body.OffsetY*body.ColliderScale,
	}
}

// sweepX returns how far obj can move by dx before touching a solid ahead of it.
func sweepX(obj *resolv.Object, dx float64) (float64, bool) {
	if dx == 0 {
		return 0, false
	}
	check := obj.Check(dx, 0, tags.ResolvSolid)
	if check == nil {
		return dx, false
	}

	hit := false
	for _, s := range check.ObjectsByTags(tags.ResolvSolid) {
		if obj.Y+obj.H <= s.Y+contactEpsilon || obj.Y >= s.Y+s.H-contactEpsilon {
			continue
		}
		if dx > 0 && s.X >= obj.X+obj.W-contactEpsilon {
			if gap := math.Max(s.X-(obj.X+obj.W), 0); gap < dx {
				dx, hit = gap, true
			}
		} else if dx < 0 && s.X+s.W <= obj.X+contactEpsilon {
			if gap := math.Min(s.X+s.W-obj.X, 0); gap > dx {
				dx, hit = gap, true
			}
		}
	}
	return dx, hit
}

// sweepY is sweepX for the vertical axis. Positive dy is down.
func sweepY(obj *resolv.Object, dy float64) (float64, bool) {
	if dy == 0 {
		return 0, false
	}
	check := obj.Check(0, dy, tags.ResolvSolid)
	if check == nil {
		return dy, false
	}

	hit := false
	for _, s := range check.ObjectsByTags(tags.ResolvSolid) {
		if obj.X+obj.W <= s.X+contactEpsilon || obj.X >= s.X+s.W-contactEpsilon {
			continue
		}
		if dy > 0 && s.Y >= obj.Y+obj.H-contactEpsilon {
			if gap := math.Max(s.Y-(obj.Y+obj.H), 0); gap < dy {
				dy, hit = gap, true
			}
		} else if dy < 0 && s.Y+s.H <= obj.Y+contactEpsilon {
			if gap := math.Min(s.Y+s.H-obj.Y, 0); gap > dy {
				dy, hit = gap, true
			}
		}
	}
	return dy, hit
}

// rebaseSpace shifts every object left by whole chunks once the player passes
// the middle of the space, and advances the space origin to match.
func rebaseSpace(space *components.SpaceData, player *resolv.Object) {
	p := cfg.Physics
	chunkPx := cfg.Level.ChunkWidth * p.PixelsPerUnit
	half := float64(space.Width()*space.CellWidth) / 2
	if chunkPx <= 0 || player.X <= half {
		return
	}

	shift := math.Floor((player.X-half)/chunkPx+1) * chunkPx
	for _, o := range space.Objects() {
		o.X -= shift
		o.Update()
	}
	space.OriginX += shift / p.PixelsPerUnit
}
