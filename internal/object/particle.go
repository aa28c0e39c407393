package object

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. Units are field pixels and seconds.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity in px/s
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Gravity     float64 // Downward acceleration in px/s²
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
		Gravity:     400,
	}
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris creates particles bursting out of a crash point.
func SpawnDebris(x, y float64, count int, speed, lifetime float64, rng *rand.Rand) []*Particle {
	out := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Speed varies 50% to 150%, lifetime 50% to 100%
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		out = append(out, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
	return out
}

// Update moves the particle. Returns true once its lifetime is over.
func (p *Particle) Update(delta time.Duration) bool {
	dt := delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY = p.VY*dragFactor + p.Gravity*dt

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetFloat(p.X, p.Y)
	return nil
}
