package systems

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// dustRand only affects particle spread
var dustRand = rand.New(rand.NewPCG(0x64757374, 1))

// dustSink feeds controller dust cues into the player's DustData.
type dustSink struct {
	player *donburi.Entry
}

func (d dustSink) SetEmissionEnabled(enabled bool) {
	dust := components.Dust.Get(d.player)
	dust.Emitting = enabled
	if !enabled {
		dust.Carry = 0
	}
}

func (d dustSink) Burst(at dmath.Vec2, count int) {
	dust := components.Dust.Get(d.player)
	for i := 0; i < count; i++ {
		emitDust(dust, at, cfg.Dust.BurstSpeed)
	}
}

// UpdateDust emits trail particles at the player's feet and ages every
// particle.
func UpdateDust(ecs *ecs.ECS) {
	dt := 1.0 / float64(cfg.C.TPS)
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		dust := components.Dust.Get(e)
		if dust.Emitting {
			if c := components.Player.Get(e).Controller; c != nil {
				dust.Carry += cfg.Dust.TrailRate * dt
				for dust.Carry >= 1 {
					dust.Carry--
					emitDust(dust, c.Feet(), cfg.Dust.BurstSpeed/3)
				}
			}
		}
		ageDust(dust, dt)
	})
}

// emitDust adds a particle thrown upward within a 120° cone. The oldest
// particle is dropped when the emitter is full.
func emitDust(dust *components.DustData, at dmath.Vec2, speed float64) {
	if limit := cfg.Dust.MaxParticles; limit > 0 && len(dust.Particles) >= limit {
		copy(dust.Particles, dust.Particles[1:])
		dust.Particles = dust.Particles[:len(dust.Particles)-1]
	}
	angle := math.Pi/2 + (dustRand.Float64()*2-1)*math.Pi/3
	s := speed * (0.5 + dustRand.Float64()*0.5)
	dust.Particles = append(dust.Particles, components.DustParticle{
		Position: at,
		Velocity: dmath.Vec2{X: math.Cos(angle) * s, Y: math.Sin(angle) * s},
		TTL:      cfg.Dust.TTL,
	})
}

func ageDust(dust *components.DustData, dt float64) {
	alive := dust.Particles[:0]
	for _, p := range dust.Particles {
		p.TTL -= dt
		if p.TTL <= 0 {
			continue
		}
		p.Velocity.Y += cfg.Dust.Gravity * dt
		p.Position.X += p.Velocity.X * dt
		p.Position.Y += p.Velocity.Y * dt
		alive = append(alive, p)
	}
	dust.Particles = alive
}
