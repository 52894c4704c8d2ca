package stage

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// wanderInterval is how often the random pattern picks a new spin axis.
const wanderInterval = 2.0

// Rotator advances the target solid's orientation once per tick.
type Rotator struct {
	pattern Pattern
	speed   float32

	orientation mgl32.Quat
	axis        mgl32.Vec3
	targetAxis  mgl32.Vec3
	wanderClock float32

	rng *rand.Rand
}

// NewRotator creates a rotator for the given pattern and angular speed.
func NewRotator(pattern Pattern, speed float32, seed int64) *Rotator {
	return &Rotator{
		pattern:     pattern,
		speed:       speed,
		orientation: mgl32.QuatIdent(),
		axis:        mgl32.Vec3{0, 1, 0},
		targetAxis:  mgl32.Vec3{0, 1, 0},
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Orientation returns the solid's current orientation.
func (r *Rotator) Orientation() mgl32.Quat {
	return r.orientation
}

// Kick steers the reactive pattern's spin axis toward the outward normal
// of the most recently struck face. Other patterns ignore it.
func (r *Rotator) Kick(worldNormal mgl32.Vec3) {
	if r.pattern != PatternReactive || worldNormal.Len() == 0 {
		return
	}
	r.targetAxis = worldNormal.Normalize()
}

// Tick advances the orientation by one simulation step.
func (r *Rotator) Tick(dt float32) {
	switch r.pattern {
	case PatternStatic:
		return

	case PatternSingleAxis:
		r.spin(r.axis, r.speed*dt)

	case PatternMultiAxis:
		r.spin(mgl32.Vec3{0, 1, 0}, r.speed*dt)
		r.spin(mgl32.Vec3{1, 0, 0}, r.speed*dt*0.6)

	case PatternRandom:
		r.wanderClock += dt
		if r.wanderClock >= wanderInterval {
			r.wanderClock = 0
			r.targetAxis = mgl32.Vec3{
				r.rng.Float32()*2 - 1,
				r.rng.Float32()*2 - 1,
				r.rng.Float32()*2 - 1,
			}
			if r.targetAxis.Len() < 1e-3 {
				r.targetAxis = mgl32.Vec3{0, 1, 0}
			}
			r.targetAxis = r.targetAxis.Normalize()
		}
		r.easeAxis(dt)
		r.spin(r.axis, r.speed*dt)

	case PatternReactive:
		r.easeAxis(dt)
		r.spin(r.axis, r.speed*dt)
	}
}

// spin applies a world-axis rotation on top of the current orientation.
func (r *Rotator) spin(axis mgl32.Vec3, angle float32) {
	if angle == 0 {
		return
	}
	r.orientation = mgl32.QuatRotate(angle, axis).Mul(r.orientation).Normalize()
}

// easeAxis drifts the spin axis toward the target axis.
func (r *Rotator) easeAxis(dt float32) {
	blend := dt * 2
	if blend > 1 {
		blend = 1
	}
	mixed := r.axis.Mul(1 - blend).Add(r.targetAxis.Mul(blend))
	if mixed.Len() < 1e-3 {
		// Target opposes the current axis; snap instead of degenerating.
		r.axis = r.targetAxis
		return
	}
	r.axis = mixed.Normalize()
}
