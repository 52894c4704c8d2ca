package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape constructors return shared (indexed) meshes with outward CCW winding.
// Normals and colors are left empty; stages run Split and then
// RecomputeFlatNormals, and the hit pipeline owns the colors.

// NewCube returns a cube centered on the origin with the given edge length.
func NewCube(size float32) *SharedMesh {
	h := size / 2
	return &SharedMesh{
		Positions: []mgl32.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
		Indices: []uint32{
			4, 5, 6, 4, 6, 7, // +z
			1, 0, 3, 1, 3, 2, // -z
			0, 4, 7, 0, 7, 3, // -x
			5, 1, 2, 5, 2, 6, // +x
			3, 7, 6, 3, 6, 2, // +y
			0, 1, 5, 0, 5, 4, // -y
		},
	}
}

// NewOctahedron returns an octahedron with vertices at distance size from
// the origin along each axis.
func NewOctahedron(size float32) *SharedMesh {
	s := size
	return &SharedMesh{
		Positions: []mgl32.Vec3{
			{0, s, 0}, {0, -s, 0},
			{s, 0, 0}, {0, 0, s}, {-s, 0, 0}, {0, 0, -s},
		},
		Indices: []uint32{
			0, 3, 2, 0, 2, 5, 0, 5, 4, 0, 4, 3,
			1, 2, 3, 1, 5, 2, 1, 4, 5, 1, 3, 4,
		},
	}
}

// icosahedron base data: 12 vertices on three orthogonal golden rectangles.
func icosahedronBase(radius float32) *SharedMesh {
	t := float32((1.0 + math.Sqrt(5.0)) / 2.0)

	raw := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	positions := make([]mgl32.Vec3, len(raw))
	for i, p := range raw {
		positions[i] = p.Normalize().Mul(radius)
	}

	return &SharedMesh{
		Positions: positions,
		Indices: []uint32{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
	}
}

// NewIcosahedron returns a regular icosahedron with the given circumradius.
func NewIcosahedron(radius float32) *SharedMesh {
	return icosahedronBase(radius)
}

// NewIcosphere returns an icosahedron subdivided the given number of times,
// with all vertices pushed out to the circumradius.
func NewIcosphere(radius float32, subdivisions int) *SharedMesh {
	m := icosahedronBase(radius)

	for s := 0; s < subdivisions; s++ {
		midCache := make(map[uint64]uint32)
		var next []uint32

		midpoint := func(a, b uint32) uint32 {
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			key := uint64(lo)<<32 | uint64(hi)
			if idx, ok := midCache[key]; ok {
				return idx
			}
			mid := m.Positions[a].Add(m.Positions[b]).Mul(0.5).Normalize().Mul(radius)
			idx := uint32(len(m.Positions))
			m.Positions = append(m.Positions, mid)
			midCache[key] = idx
			return idx
		}

		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
			ab := midpoint(a, b)
			bc := midpoint(b, c)
			ca := midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		m.Indices = next
	}

	return m
}

// NewShape builds a shared mesh by name. Subdivisions only applies to the
// icosphere shape.
func NewShape(name string, size float32, subdivisions int) (*SharedMesh, error) {
	switch name {
	case "cube":
		return NewCube(size), nil
	case "octahedron":
		return NewOctahedron(size), nil
	case "icosahedron":
		return NewIcosahedron(size), nil
	case "icosphere":
		return NewIcosphere(size, subdivisions), nil
	default:
		return nil, fmt.Errorf("geometry: unknown shape %q", name)
	}
}
