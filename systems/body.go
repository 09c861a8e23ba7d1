package systems

import (
	"github.com/automoto/numeralrun/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// bodyAdapter exposes a player entity's BodyData and resolv object to the
// movement controller.
type bodyAdapter struct {
	player *donburi.Entry
	space  *donburi.Entry
}

func (b bodyAdapter) data() *components.BodyData { return components.Body.Get(b.player) }

func (b bodyAdapter) Velocity() math.Vec2       { return b.data().Velocity }
func (b bodyAdapter) SetVelocity(v math.Vec2)   { b.data().Velocity = v }
func (b bodyAdapter) Mass() float64             { return b.data().Mass }
func (b bodyAdapter) SetMass(m float64)         { b.data().Mass = m }
func (b bodyAdapter) GravityScale() float64     { return b.data().GravityScale }
func (b bodyAdapter) SetGravityScale(s float64) { b.data().GravityScale = s }

func (b bodyAdapter) ApplyImpulse(dir math.Vec2, magnitude float64) {
	d := b.data()
	if d.Mass <= 0 {
		return
	}
	d.Velocity.X += dir.X * magnitude / d.Mass
	d.Velocity.Y += dir.Y * magnitude / d.Mass
}

func (b bodyAdapter) SetColliderScale(s float64) {
	b.data().ColliderScale = s
	syncObject(b.player, b.space)
}

// OverlapGround tests a square probe of half-size radius around point against
// objects tagged filter. The resolv check finds candidate cells below the
// collider; candidates are then tested exactly against the probe.
func (b bodyAdapter) OverlapGround(point math.Vec2, radius float64, filter string) bool {
	hit := b.overlapGround(point, radius, filter)

	probe := &components.Player.Get(b.player).Probe
	probe.X, probe.Y, probe.Radius, probe.Hit = point.X, point.Y, radius, hit
	return hit
}

func (b bodyAdapter) overlapGround(point math.Vec2, radius float64, filter string) bool {
	if b.space == nil {
		return false
	}
	space := components.Space.Get(b.space)
	obj := components.Object.Get(b.player).Object

	px, py, pw, ph := space.ToPixels(point.X-radius, point.Y-radius, radius*2, radius*2)

	reach := py + ph - (obj.Y + obj.H)
	if reach < 1 {
		reach = 1
	}
	check := obj.Check(0, reach+1, filter)
	if check == nil {
		return false
	}
	for _, o := range check.ObjectsByTags(filter) {
		if overlaps(px, py, pw, ph, o) {
			return true
		}
	}
	return false
}

func overlaps(x, y, w, h float64, o *resolv.Object) bool {
	return x < o.X+o.W && x+w > o.X && y < o.Y+o.H && y+h > o.Y
}

// transformAdapter exposes a player's TransformData. Moving the transform
// moves the collision object with it.
type transformAdapter struct {
	player *donburi.Entry
	space  *donburi.Entry
}

func (t transformAdapter) data() *components.TransformData { return components.Transform.Get(t.player) }

func (t transformAdapter) Position() math.Vec2 { return t.data().Position }

func (t transformAdapter) SetPosition(p math.Vec2) {
	t.data().Position = p
	syncObject(t.player, t.space)
}

func (t transformAdapter) Scale() math.Vec2      { return t.data().Scale }
func (t transformAdapter) SetScale(s math.Vec2)  { t.data().Scale = s }
func (t transformAdapter) Rotation() float64     { return t.data().Rotation }
func (t transformAdapter) SetRotation(r float64) { t.data().Rotation = r }

// syncObject places the entity's resolv object at its scaled collider box.
func syncObject(e, spaceEntry *donburi.Entry) {
	if spaceEntry == nil {
		return
	}
	body := components.Body.Get(e)
	xf := components.Transform.Get(e)
	x, y, w, h := body.Box(xf.Position)
	components.Space.Get(spaceEntry).Place(components.Object.Get(e).Object, x, y, w, h)
}

// playerTeleporter is the level stream's view of the player.
type playerTeleporter struct {
	player *donburi.Entry
	space  *donburi.Entry
}

func (p playerTeleporter) Position() math.Vec2 {
	return components.Transform.Get(p.player).Position
}

func (p playerTeleporter) Teleport(to math.Vec2) {
	components.Transform.Get(p.player).Position = to
	components.Body.Get(p.player).Velocity = math.Vec2{}
	components.Player.Get(p.player).Teleported = true
	syncObject(p.player, p.space)
}
