package stage

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func testStage(t *testing.T, def Def) *Stage {
	t.Helper()
	s, err := New(0, def, Tuning{RestoreDuration: 100 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func staticCube() Def {
	return Def{
		Name:            "test",
		Shape:           "cube",
		Size:            2,
		RotationPattern: PatternStatic,
		RequiredHits:    1,
	}
}

func TestStageCastHitsStaticCube(t *testing.T) {
	s := testStage(t, staticCube())

	// Cube of edge 2 centered at origin: +z face at z=1.
	point, tri, ok := s.Cast(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 10)
	if !ok {
		t.Fatal("expected hit")
	}
	if z := point.Z(); z < 0.999 || z > 1.001 {
		t.Errorf("hit z = %f, want 1", z)
	}
	if tri < 0 || tri >= s.Mesh().TriangleCount() {
		t.Errorf("triangle index %d out of range", tri)
	}

	// Short cast stops before the face.
	if _, _, ok := s.Cast(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 3); ok {
		t.Error("cast beyond maxDist reported a hit")
	}
}

func TestStageApplyHitDrivesCompletion(t *testing.T) {
	s := testStage(t, staticCube())

	completed := 0
	s.OnCompleted = func(int) { completed++ }

	point, tri, ok := s.Cast(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 10)
	if !ok {
		t.Fatal("expected hit")
	}
	s.ApplyHit(point, mgl32.Vec3{0, 0, -1}, tri)

	if completed != 1 {
		t.Errorf("completed events = %d, want 1", completed)
	}
	if s.CompletedCount() != 1 {
		t.Errorf("tally = %d, want 1", s.CompletedCount())
	}
}

func TestStageClearDetection(t *testing.T) {
	s := testStage(t, staticCube())

	// Deplete all six faces by firing at each face normal.
	dirs := []mgl32.Vec3{
		{0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0},
	}
	for _, d := range dirs {
		origin := d.Mul(-5)
		point, tri, ok := s.Cast(origin, d, 10)
		if !ok {
			t.Fatalf("no hit along %v", d)
		}
		s.ApplyHit(point, d, tri)
	}

	if !s.Faces().AllCompleted() {
		t.Fatalf("not all faces completed: %d/%d", s.CompletedCount(), s.RepresentativeCount())
	}
	if s.Cleared() {
		t.Error("cleared before tick")
	}
	s.Tick(1.0 / 60.0)
	if !s.Cleared() {
		t.Error("clear not detected on tick")
	}
	want := s.ClearTime()

	// Timer freezes after the clear.
	s.Tick(1)
	if s.ClearTime() != want {
		t.Errorf("clear time changed after clearing: %f -> %f", want, s.ClearTime())
	}
}

func TestStageRotatedCast(t *testing.T) {
	def := staticCube()
	def.RotationPattern = PatternSingleAxis
	def.RotationSpeed = 1
	s := testStage(t, def)

	// Quarter turn around Y: the cast must still resolve against the
	// rotated solid and report a world-space point on its surface.
	for i := 0; i < 94; i++ { // ~pi/2 at 60 Hz
		s.Tick(1.0 / 60.0)
	}

	point, _, ok := s.Cast(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 10)
	if !ok {
		t.Fatal("expected hit on rotated cube")
	}
	if z := point.Z(); z < 0.9 || z > 1.5 {
		t.Errorf("hit z = %f, want on the cube surface facing the ray", z)
	}
}

func TestStageShotCounter(t *testing.T) {
	s := testStage(t, staticCube())
	s.AddShot()
	s.AddShot()
	if s.Shots() != 2 {
		t.Errorf("Shots() = %d, want 2", s.Shots())
	}
}

func TestRotatorPatterns(t *testing.T) {
	idt := mgl32.QuatIdent()

	r := NewRotator(PatternStatic, 1, 1)
	r.Tick(1)
	if r.Orientation() != idt {
		t.Error("static pattern rotated")
	}

	r = NewRotator(PatternSingleAxis, 1, 1)
	r.Tick(0.5)
	if r.Orientation() == idt {
		t.Error("single-axis pattern did not rotate")
	}

	r = NewRotator(PatternRandom, 1, 1)
	for i := 0; i < 300; i++ {
		r.Tick(1.0 / 60.0)
	}
	if r.Orientation() == idt {
		t.Error("random pattern did not rotate")
	}

	// Orientation stays normalized over many steps.
	q := r.Orientation()
	l := q.Len()
	if l < 0.999 || l > 1.001 {
		t.Errorf("orientation norm = %f, want 1", l)
	}
}

func TestRotatorReactiveKick(t *testing.T) {
	r := NewRotator(PatternReactive, 1, 1)
	r.Kick(mgl32.Vec3{1, 0, 0})
	for i := 0; i < 120; i++ {
		r.Tick(1.0 / 60.0)
	}
	// Axis eased toward the kick direction.
	if r.axis.Dot(mgl32.Vec3{1, 0, 0}) < 0.9 {
		t.Errorf("axis = %v, want eased toward +x", r.axis)
	}

	// Non-reactive rotator ignores kicks.
	r2 := NewRotator(PatternSingleAxis, 1, 1)
	r2.Kick(mgl32.Vec3{1, 0, 0})
	if r2.targetAxis.Dot(mgl32.Vec3{0, 1, 0}) < 0.99 {
		t.Error("single-axis rotator accepted a kick")
	}
}
