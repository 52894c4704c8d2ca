package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPositionOnSphere(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{1, 2, 3}

	got := c.Position().Sub(c.Center).Len()
	if diff := got - c.Distance; diff < -1e-4 || diff > 1e-4 {
		t.Errorf("distance from center = %f, want %f", got, c.Distance)
	}
}

func TestForwardPointsAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX = 0.4
	c.RotationY = 1.1

	f := c.Forward()
	if l := f.Len(); l < 0.999 || l > 1.001 {
		t.Errorf("forward norm = %f, want 1", l)
	}
	// Walking the forward direction for Distance units lands on the center.
	end := c.Position().Add(f.Mul(c.Distance))
	if end.Sub(c.Center).Len() > 1e-3 {
		t.Errorf("position + forward*distance = %v, want %v", end, c.Center)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %f, want clamped to %f", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %f, want clamped to %f", c.RotationX, c.MinPitch)
	}
}

func TestDragInvertY(t *testing.T) {
	c := NewOrbitCamera()
	before := c.RotationX
	c.InvertY = true
	c.HandleDrag(0, 10)
	if c.RotationX >= before {
		t.Errorf("inverted drag raised pitch: %f -> %f", before, c.RotationX)
	}
}

func TestZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want clamped to %f", c.Distance, c.MinDistance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %f, want clamped to %f", c.Distance, c.MaxDistance)
	}
}
