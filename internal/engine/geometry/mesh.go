// Package geometry provides the exploded triangle mesh model used for both
// rendering and hit resolution.
package geometry

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyMesh is returned when a shape is built from a source mesh with no
// triangles. A zero-polygon shape would trivially satisfy stage completion,
// so this is treated as a configuration error.
var ErrEmptyMesh = errors.New("geometry: source mesh has no triangles")

// Vertex is a single vertex of an exploded mesh. No vertex is shared between
// triangles; triangle t owns indices [3t, 3t+1, 3t+2].
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3 // current display color, mutated by the hit pipeline
	Bary     mgl32.Vec2 // barycentric tag: v0=(1,0), v1=(0,1), v2=(0,0)
	Base     mgl32.Vec3 // pre-split color, the "background" reference
}

// Mesh is a fully de-duplicated triangle mesh.
type Mesh struct {
	Vertices []Vertex
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// TrianglePositions returns the three corner positions of triangle t.
func (m *Mesh) TrianglePositions(t int) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	return m.Vertices[3*t].Position, m.Vertices[3*t+1].Position, m.Vertices[3*t+2].Position
}

// Centroid returns the center of triangle t.
func (m *Mesh) Centroid(t int) mgl32.Vec3 {
	a, b, c := m.TrianglePositions(t)
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// FaceNormal returns the geometric (winding-derived) unit normal of
// triangle t, or the zero vector for a degenerate triangle.
func (m *Mesh) FaceNormal(t int) mgl32.Vec3 {
	a, b, c := m.TrianglePositions(t)
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-7 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// PlaneOffset returns the signed plane offset dot(normal, v0) of triangle t.
func (m *Mesh) PlaneOffset(t int) float32 {
	return m.FaceNormal(t).Dot(m.Vertices[3*t].Position)
}

// SetTriangleColor sets the display color of all three vertices of triangle t.
func (m *Mesh) SetTriangleColor(t int, color mgl32.Vec3) {
	m.Vertices[3*t].Color = color
	m.Vertices[3*t+1].Color = color
	m.Vertices[3*t+2].Color = color
}

// RecomputeFlatNormals overwrites every vertex normal with its triangle's
// geometric normal. Degenerate triangles keep their current normals.
func (m *Mesh) RecomputeFlatNormals() {
	for t := 0; t < m.TriangleCount(); t++ {
		n := m.FaceNormal(t)
		if n.Len() == 0 {
			continue
		}
		m.Vertices[3*t].Normal = n
		m.Vertices[3*t+1].Normal = n
		m.Vertices[3*t+2].Normal = n
	}
}

// Bounds returns the axis-aligned min/max corners of the mesh.
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	min := m.Vertices[0].Position
	max := min
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}
