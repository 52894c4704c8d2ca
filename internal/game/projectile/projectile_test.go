package projectile

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// planeCollider is a flat +z-facing wall at the given z.
type planeCollider struct {
	wallZ    float32
	hits     int
	hitPoint mgl32.Vec3
}

func (c *planeCollider) Cast(origin, dir mgl32.Vec3, maxDist float32) (mgl32.Vec3, int, bool) {
	if dir.Z() >= 0 {
		return mgl32.Vec3{}, -1, false
	}
	t := (c.wallZ - origin.Z()) / dir.Z()
	if t < 0 || t > maxDist {
		return mgl32.Vec3{}, -1, false
	}
	return origin.Add(dir.Mul(t)), 0, true
}

func (c *planeCollider) ApplyHit(point, forward mgl32.Vec3, triangle int) {
	c.hits++
	c.hitPoint = point
}

func TestNoTunnelingAtHighSpeed(t *testing.T) {
	// speed=20, dt=1/60 gives ~0.333 units of travel; a face 0.1 units
	// ahead must be hit on this tick, not stepped over.
	pool := NewPool(1, 20, time.Second)
	wall := &planeCollider{wallZ: 0}

	p := pool.Spawn(mgl32.Vec3{0, 0, 0.1}, mgl32.Vec3{0, 0, -1})
	if p == nil {
		t.Fatal("spawn failed")
	}

	pool.Tick(1.0/60.0, wall)

	if wall.hits != 1 {
		t.Fatalf("hits = %d, want 1 (projectile tunneled)", wall.hits)
	}
	if p.Active() {
		t.Error("projectile still active after impact")
	}
	// Snapped to the surface, not past it.
	if p.Position().Z() < -1e-4 || p.Position().Z() > 1e-4 {
		t.Errorf("position z = %f, want snapped to 0", p.Position().Z())
	}
}

func TestAdvanceWithoutImpact(t *testing.T) {
	pool := NewPool(1, 10, time.Second)
	wall := &planeCollider{wallZ: -100}

	p := pool.Spawn(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	pool.Tick(0.1, wall)

	if wall.hits != 0 {
		t.Errorf("hits = %d, want 0", wall.hits)
	}
	want := float32(-1.0)
	if z := p.Position().Z(); z < want-1e-4 || z > want+1e-4 {
		t.Errorf("position z = %f, want %f", z, want)
	}
}

func TestLifetimeRetires(t *testing.T) {
	pool := NewPool(1, 1, 500*time.Millisecond)
	wall := &planeCollider{wallZ: -100}

	p := pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	for i := 0; i < 10; i++ {
		pool.Tick(0.1, wall)
	}

	if p.Active() {
		t.Error("projectile outlived its lifetime")
	}
	if wall.hits != 0 {
		t.Errorf("hits = %d, want 0", wall.hits)
	}
}

func TestRetireIdempotent(t *testing.T) {
	pool := NewPool(1, 20, time.Second)
	wall := &planeCollider{wallZ: 0}

	p := pool.Spawn(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1})
	p.Retire()
	p.Retire()

	// A retired projectile ignores further collision signals.
	pool.Tick(1, wall)
	if wall.hits != 0 {
		t.Errorf("retired projectile produced %d hits", wall.hits)
	}
}

func TestPoolExhaustionRefusesSpawn(t *testing.T) {
	pool := NewPool(2, 1, time.Second)

	if pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}) == nil {
		t.Fatal("first spawn refused")
	}
	if pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}) == nil {
		t.Fatal("second spawn refused")
	}
	if pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}) != nil {
		t.Error("exhausted pool granted a spawn")
	}
	if pool.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, want 2", pool.ActiveCount())
	}
}

func TestPoolReusesRetiredSlots(t *testing.T) {
	pool := NewPool(1, 1, time.Second)

	p := pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	p.Retire()

	if pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}) == nil {
		t.Error("retired slot not reused")
	}
}

func TestPoolClear(t *testing.T) {
	pool := NewPool(4, 1, time.Second)
	for i := 0; i < 4; i++ {
		pool.Spawn(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	}
	pool.Clear()
	if pool.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d after Clear, want 0", pool.ActiveCount())
	}
}
