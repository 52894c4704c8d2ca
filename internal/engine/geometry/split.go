package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// SharedMesh is an indexed source mesh as produced by the shape constructors
// or any external loader. Normals and Colors are optional; when present they
// must be per-vertex (same length as Positions).
type SharedMesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec3
	Indices   []uint32
}

var (
	defaultNormal = mgl32.Vec3{0, 1, 0}
	defaultColor  = mgl32.Vec3{1, 1, 1}
)

// Split explodes a shared mesh so that every triangle owns three unique
// vertices. Winding is preserved; missing normals default to the up vector
// and missing colors default to white. Each vertex is tagged with its
// barycentric corner and a copy of its pre-split color.
//
// Split runs once per shape instantiation. The exploded mesh backs both the
// render buffers and the collision queries, so any triangle index reported
// by a cast is guaranteed to match this mesh's numbering.
func Split(src *SharedMesh) (*Mesh, error) {
	if src == nil || len(src.Indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(src.Indices)%3 != 0 {
		return nil, fmt.Errorf("geometry: index count %d is not a multiple of 3", len(src.Indices))
	}
	if src.Normals != nil && len(src.Normals) != len(src.Positions) {
		return nil, fmt.Errorf("geometry: %d normals for %d positions", len(src.Normals), len(src.Positions))
	}
	if src.Colors != nil && len(src.Colors) != len(src.Positions) {
		return nil, fmt.Errorf("geometry: %d colors for %d positions", len(src.Colors), len(src.Positions))
	}

	bary := [3]mgl32.Vec2{{1, 0}, {0, 1}, {0, 0}}

	out := &Mesh{Vertices: make([]Vertex, 0, len(src.Indices))}
	for i, idx := range src.Indices {
		if int(idx) >= len(src.Positions) {
			return nil, fmt.Errorf("geometry: index %d out of range (%d positions)", idx, len(src.Positions))
		}

		v := Vertex{
			Position: src.Positions[idx],
			Normal:   defaultNormal,
			Color:    defaultColor,
			Bary:     bary[i%3],
			Base:     defaultColor,
		}
		if src.Normals != nil {
			v.Normal = src.Normals[idx]
		}
		if src.Colors != nil {
			v.Color = src.Colors[idx]
			v.Base = src.Colors[idx]
		}
		out.Vertices = append(out.Vertices, v)
	}

	return out, nil
}
