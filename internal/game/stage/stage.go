package stage

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/engine/collide"
	"github.com/okatsuro/prismbreak/internal/engine/geometry"
	"github.com/okatsuro/prismbreak/internal/game/face"
)

// Tuning carries the gameplay knobs a stage needs from the main config.
type Tuning struct {
	RestoreDuration time.Duration
}

// Stage owns one run's simulation state: the exploded mesh, the polygon
// group table, the target rotation, and the clear timer. It implements
// projectile.Collider in world space.
type Stage struct {
	index int
	def   Def

	mesh    *geometry.Mesh
	faces   *face.Manager
	rotator *Rotator
	bounds  collide.AABB

	elapsed   float64
	shots     int
	cleared   bool
	clearTime float64

	log *zap.Logger

	// Forwarded face events; group ids refer to the face table.
	OnHit       func(group int)
	OnCompleted func(group int)
	OnRestored  func(group int)
}

// New builds a stage from its definition. Configuration errors (unknown
// shape, bad link graph, empty mesh) surface here.
func New(index int, def Def, tuning Tuning, log *zap.Logger) (*Stage, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	shared, err := geometry.NewShape(def.Shape, def.Size, def.Subdivisions)
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.Split(shared)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", def.Name, err)
	}
	mesh.RecomputeFlatNormals()

	faces, err := face.New(mesh, face.Config{
		MaxHP:           def.RequiredHits,
		RestoreDuration: tuning.RestoreDuration,
		Links:           def.LinkedFaces,
	})
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", def.Name, err)
	}
	faces.SetLogger(log)

	s := &Stage{
		index:   index,
		def:     def,
		mesh:    mesh,
		faces:   faces,
		rotator: NewRotator(def.RotationPattern, def.RotationSpeed, time.Now().UnixNano()),
		bounds:  collide.MeshBounds(mesh),
		log:     log,
	}

	faces.OnHit = func(g int) {
		s.reactTo(g)
		if s.OnHit != nil {
			s.OnHit(g)
		}
	}
	faces.OnCompleted = func(g int) {
		s.reactTo(g)
		if s.OnCompleted != nil {
			s.OnCompleted(g)
		}
	}
	faces.OnRestored = func(g int) {
		s.reactTo(g)
		if s.OnRestored != nil {
			s.OnRestored(g)
		}
	}

	log.Info("stage built",
		zap.Int("index", index),
		zap.String("name", def.Name),
		zap.String("shape", def.Shape),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("groups", faces.Table().Len()),
		zap.Int("targets", faces.RepresentativeCount()),
	)
	return s, nil
}

// reactTo feeds the struck face's world normal to the reactive rotator.
func (s *Stage) reactTo(group int) {
	n := s.faces.Table().Group(group).Normal
	s.rotator.Kick(s.rotator.Orientation().Rotate(n))
}

// Tick advances rotation, restore animations, and the clear timer.
func (s *Stage) Tick(dt float32) {
	s.rotator.Tick(dt)
	s.faces.Tick(dt)

	if !s.cleared {
		s.elapsed += float64(dt)
		if s.faces.AllCompleted() {
			s.cleared = true
			s.clearTime = s.elapsed
			s.log.Info("stage cleared",
				zap.Int("index", s.index),
				zap.Float64("clear_time", s.clearTime),
				zap.Int("shots", s.shots),
			)
		}
	}
}

// Cast implements projectile.Collider: a world-space swept ray against the
// rotating shape, resolved in mesh-local space.
func (s *Stage) Cast(origin, dir mgl32.Vec3, maxDist float32) (mgl32.Vec3, int, bool) {
	q := s.rotator.Orientation()
	inv := q.Inverse()

	ray := collide.Ray{
		Origin:    inv.Rotate(origin),
		Direction: inv.Rotate(dir),
	}
	hit, ok := collide.CastMesh(ray, s.mesh, maxDist)
	if !ok {
		return mgl32.Vec3{}, -1, false
	}
	return q.Rotate(hit.Point), hit.Triangle, true
}

// ApplyHit implements projectile.Collider, forwarding a world-space impact
// to the hit pipeline in mesh-local coordinates.
func (s *Stage) ApplyHit(point, forward mgl32.Vec3, triangle int) {
	inv := s.rotator.Orientation().Inverse()
	s.faces.ResolveAndApplyHit(inv.Rotate(point), inv.Rotate(forward), triangle)
}

// AddShot records a fired projectile for the stage stats.
func (s *Stage) AddShot() {
	s.shots++
}

// ModelMatrix returns the solid's current model transform.
func (s *Stage) ModelMatrix() mgl32.Mat4 {
	return s.rotator.Orientation().Mat4()
}

// Accessors for the render/game layers.

func (s *Stage) Index() int { return s.index }

func (s *Stage) Name() string { return s.def.Name }

func (s *Stage) Mesh() *geometry.Mesh { return s.mesh }

func (s *Stage) Faces() *face.Manager { return s.faces }

func (s *Stage) Bounds() collide.AABB { return s.bounds }

func (s *Stage) Shots() int { return s.shots }

func (s *Stage) Elapsed() float64 { return s.elapsed }

func (s *Stage) Cleared() bool { return s.cleared }

func (s *Stage) ClearTime() float64 { return s.clearTime }

func (s *Stage) CompletedCount() int { return s.faces.CompletedCount() }

func (s *Stage) RepresentativeCount() int { return s.faces.RepresentativeCount() }
