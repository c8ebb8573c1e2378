package engine

import (
	"math"
	"math/rand"
)

// Particle is one member of the fixed-size pool drifting outward from the
// core. Slots are recycled in place, never added or removed, so the pool
// size is invariant across ticks.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Life    float64
	MaxLife float64
}

func newParticlePool(n int, rng *rand.Rand) []Particle {
	pool := make([]Particle, n)
	for i := range pool {
		respawnParticle(&pool[i], rng)
		// Stagger initial ages so the pool doesn't pulse in lockstep.
		pool[i].Life = rng.Float64() * pool[i].MaxLife
	}
	return pool
}

// updateParticles advances every particle one tick. Particles that leave the
// unit disk or run out of life are respawned near the center, keeping the
// pool fully populated.
func updateParticles(pool []Particle, dt float64, rng *rand.Rand) {
	for i := range pool {
		p := &pool[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Life--

		if p.Life <= 0 || p.X*p.X+p.Y*p.Y > 1 {
			respawnParticle(p, rng)
		}
	}
}

func respawnParticle(p *Particle, rng *rand.Rand) {
	angle := rng.Float64() * 2 * math.Pi
	spawnR := rng.Float64() * 0.05
	speed := 0.05 + rng.Float64()*0.2

	p.X = spawnR * math.Cos(angle)
	p.Y = spawnR * math.Sin(angle)
	p.VX = speed * math.Cos(angle)
	p.VY = speed * math.Sin(angle)
	p.Size = 1 + rng.Float64()*2.5
	p.Opacity = 0.3 + rng.Float64()*0.7
	p.MaxLife = 60 + rng.Float64()*180
	p.Life = p.MaxLife
}
