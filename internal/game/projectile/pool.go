package projectile

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Pool is a fixed-capacity projectile pool. Exhaustion refuses the spawn
// rather than growing; the capacity is a configuration knob.
type Pool struct {
	items    []Projectile
	speed    float32
	lifetime float32
}

// NewPool creates a pool of the given capacity. Every spawned projectile
// shares the configured speed and lifetime.
func NewPool(capacity int, speed float32, lifetime time.Duration) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		items:    make([]Projectile, capacity),
		speed:    speed,
		lifetime: float32(lifetime.Seconds()),
	}
}

// Spawn activates a projectile at the given position and direction.
// Returns nil when the pool is exhausted.
func (p *Pool) Spawn(pos, dir mgl32.Vec3) *Projectile {
	for i := range p.items {
		if p.items[i].active {
			continue
		}
		p.items[i] = Projectile{
			pos:      pos,
			dir:      dir.Normalize(),
			speed:    p.speed,
			lifetime: p.lifetime,
			active:   true,
		}
		return &p.items[i]
	}
	return nil
}

// Tick advances every active projectile.
func (p *Pool) Tick(dt float32, c Collider) {
	for i := range p.items {
		p.items[i].Tick(dt, c)
	}
}

// ActiveCount returns the number of projectiles in flight.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.items {
		if p.items[i].active {
			n++
		}
	}
	return n
}

// Each calls fn for every active projectile.
func (p *Pool) Each(fn func(*Projectile)) {
	for i := range p.items {
		if p.items[i].active {
			fn(&p.items[i])
		}
	}
}

// Clear retires every projectile, used at stage teardown.
func (p *Pool) Clear() {
	for i := range p.items {
		p.items[i].Retire()
	}
}
