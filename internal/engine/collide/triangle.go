package collide

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/okatsuro/prismbreak/internal/engine/geometry"
)

// detEpsilon rejects rays near-parallel to the triangle plane.
const detEpsilon = 1e-7

// Hit describes a ray-triangle intersection against a mesh.
type Hit struct {
	Triangle int        // index into the exploded mesh
	Distance float32    // ray parameter t
	Point    mgl32.Vec3 // intersection point (mesh-local)
	U, V     float32    // barycentric coordinates
}

// IntersectTriangle runs the Moller-Trumbore test against a single triangle.
// Returns the ray parameter and barycentric coordinates of the hit.
func (r Ray) IntersectTriangle(v0, v1, v2 mgl32.Vec3) (t, u, v float32, ok bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if float32(gomath.Abs(float64(det))) < detEpsilon {
		return 0, 0, 0, false
	}

	inv := 1 / det
	s := r.Origin.Sub(v0)
	u = s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * inv
	if t <= detEpsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// CastMesh finds the nearest triangle hit along the ray. maxDist limits the
// cast (the swept CCD distance); pass a non-positive value for an unlimited
// cast. Returns false when no triangle intersects within range.
func CastMesh(r Ray, m *geometry.Mesh, maxDist float32) (Hit, bool) {
	best := Hit{Triangle: -1, Distance: float32(gomath.MaxFloat32)}

	for tri := 0; tri < m.TriangleCount(); tri++ {
		v0, v1, v2 := m.TrianglePositions(tri)
		t, u, v, ok := r.IntersectTriangle(v0, v1, v2)
		if !ok || t >= best.Distance {
			continue
		}
		if maxDist > 0 && t > maxDist {
			continue
		}
		best = Hit{Triangle: tri, Distance: t, U: u, V: v}
	}

	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.Origin.Add(r.Direction.Mul(best.Distance))
	return best, true
}

// NearestTriangle returns the triangle whose centroid is closest to the
// given point. This is the fallback when a cast slips past every face due to
// numerical slop; it never fails on a non-empty mesh. Returns -1 for an
// empty mesh.
func NearestTriangle(m *geometry.Mesh, point mgl32.Vec3) int {
	best := -1
	bestDist := float32(gomath.MaxFloat32)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		d := m.Centroid(tri).Sub(point).Len()
		if d < bestDist {
			bestDist = d
			best = tri
		}
	}
	return best
}
