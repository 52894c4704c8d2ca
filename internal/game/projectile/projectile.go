// Package projectile implements swept-ray projectile motion and pooling.
package projectile

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Collider is the surface a projectile can strike, in world space. A stage
// implements it by transforming rays into the rotating shape's local space
// and forwarding resolved impacts to the hit pipeline.
type Collider interface {
	// Cast performs a swept ray test limited to maxDist. The returned
	// triangle index refers to the shape's exploded mesh.
	Cast(origin, dir mgl32.Vec3, maxDist float32) (point mgl32.Vec3, triangle int, ok bool)

	// ApplyHit forwards a resolved impact to the hit pipeline.
	ApplyHit(point, forward mgl32.Vec3, triangle int)
}

// Projectile is a single pooled shot. Zero value is inactive.
type Projectile struct {
	pos      mgl32.Vec3
	dir      mgl32.Vec3 // normalized
	speed    float32
	age      float32
	lifetime float32
	active   bool
}

// Position returns the projectile's world position.
func (p *Projectile) Position() mgl32.Vec3 {
	return p.pos
}

// Active reports whether the projectile is in flight.
func (p *Projectile) Active() bool {
	return p.active
}

// Retire returns the projectile to the pool. Safe to call repeatedly; a
// projectile already retiring ignores further signals.
func (p *Projectile) Retire() {
	p.active = false
}

// Tick advances the projectile by one simulation step. The full tick
// displacement is swept with a ray before any movement, so a fast shot
// cannot tunnel through a thin face. On impact the projectile snaps to the
// impact point, never overshooting the surface, and retires.
func (p *Projectile) Tick(dt float32, c Collider) {
	if !p.active {
		return
	}

	step := p.speed * dt
	if point, tri, ok := c.Cast(p.pos, p.dir, step); ok {
		c.ApplyHit(point, p.dir, tri)
		p.pos = point
		p.Retire()
		return
	}

	p.pos = p.pos.Add(p.dir.Mul(step))
	p.age += dt
	if p.age >= p.lifetime {
		p.Retire()
	}
}
