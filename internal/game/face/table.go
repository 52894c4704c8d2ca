package face

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/okatsuro/prismbreak/internal/engine/geometry"
)

// Grouping tolerances: triangles merge into one logical face when their
// normals are within about one degree and their signed plane offsets match.
const (
	normalCosTolerance = 0.99985 // cos(1 deg)
	offsetTolerance    = 1e-3
)

// Group is one logical target face: a set of coplanar triangles with shared
// health and color state. Created once at stage initialization and mutated
// only by the hit pipeline.
type Group struct {
	ID        int
	HP        int
	MaxHP     int
	Completed bool

	Normal mgl32.Vec3 // outward unit normal (group key)
	Offset float32    // signed plane offset (group key)

	Triangles []int      // triangle indices into the exploded mesh
	Center    mgl32.Vec3 // geometric center, origin of the restore spread
	Radius    float32    // max vertex distance from Center

	Base mgl32.Vec3 // original color, shown once the group is depleted

	Links      []int // groups mirroring this one's state
	linkTarget bool  // true for a linked sub-face; excluded from the tally
}

// LinkTarget reports whether this group is a linked sub-face of another.
func (g *Group) LinkTarget() bool {
	return g.linkTarget
}

// Table holds one Group per merged coplanar face and the reverse lookup
// from triangle index to group index.
type Table struct {
	groups     []Group
	triToGroup []int
}

// BuildTable groups the mesh's triangles by plane equation. Every group
// starts at full health.
func BuildTable(mesh *geometry.Mesh, maxHP int) (*Table, error) {
	if mesh == nil || mesh.TriangleCount() == 0 {
		return nil, geometry.ErrEmptyMesh
	}
	if maxHP < 1 {
		return nil, fmt.Errorf("face: maxHP must be >= 1, got %d", maxHP)
	}

	t := &Table{
		triToGroup: make([]int, mesh.TriangleCount()),
	}

	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		n := mesh.FaceNormal(tri)
		off := n.Dot(mesh.Vertices[3*tri].Position)

		gi := -1
		if n.Len() > 0 {
			for i := range t.groups {
				g := &t.groups[i]
				if g.Normal.Dot(n) > normalCosTolerance &&
					float32(gomath.Abs(float64(g.Offset-off))) < offsetTolerance {
					gi = i
					break
				}
			}
		}

		if gi < 0 {
			gi = len(t.groups)
			t.groups = append(t.groups, Group{
				ID:     gi,
				HP:     maxHP,
				MaxHP:  maxHP,
				Normal: n,
				Offset: off,
				Base:   mesh.Vertices[3*tri].Base,
			})
		}
		t.groups[gi].Triangles = append(t.groups[gi].Triangles, tri)
		t.triToGroup[tri] = gi
	}

	for i := range t.groups {
		g := &t.groups[i]

		center := mgl32.Vec3{}
		for _, tri := range g.Triangles {
			center = center.Add(mesh.Centroid(tri))
		}
		g.Center = center.Mul(1 / float32(len(g.Triangles)))

		for _, tri := range g.Triangles {
			for j := 0; j < 3; j++ {
				d := mesh.Vertices[3*tri+j].Position.Sub(g.Center).Len()
				if d > g.Radius {
					g.Radius = d
				}
			}
		}
	}

	return t, nil
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}

// Group returns the group with the given index.
func (t *Table) Group(i int) *Group {
	return &t.groups[i]
}

// GroupForTriangle returns the group index owning the given triangle.
func (t *Table) GroupForTriangle(tri int) int {
	return t.triToGroup[tri]
}
