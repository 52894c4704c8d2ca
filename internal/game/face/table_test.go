package face

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/okatsuro/prismbreak/internal/engine/geometry"
)

func explode(t *testing.T, src *geometry.SharedMesh) *geometry.Mesh {
	t.Helper()
	m, err := geometry.Split(src)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	return m
}

func TestBuildTableMergesCoplanarFaces(t *testing.T) {
	// A cube's 12 triangles pair up into 6 planar faces.
	mesh := explode(t, geometry.NewCube(2))
	table, err := BuildTable(mesh, 3)
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}

	if table.Len() != 6 {
		t.Fatalf("Len() = %d, want 6 groups for a cube", table.Len())
	}
	for i := 0; i < table.Len(); i++ {
		g := table.Group(i)
		if len(g.Triangles) != 2 {
			t.Errorf("group %d has %d triangles, want 2", i, len(g.Triangles))
		}
		if g.HP != 3 || g.MaxHP != 3 {
			t.Errorf("group %d hp = %d/%d, want 3/3", i, g.HP, g.MaxHP)
		}
		if g.Completed {
			t.Errorf("group %d starts completed", i)
		}
	}
}

func TestBuildTableKeepsCurvedFacesApart(t *testing.T) {
	// No two icosahedron faces are coplanar, so per-plane grouping
	// degenerates to per-triangle.
	mesh := explode(t, geometry.NewIcosahedron(1))
	table, err := BuildTable(mesh, 1)
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}
	if table.Len() != 20 {
		t.Errorf("Len() = %d, want 20", table.Len())
	}
}

func TestGroupForTriangleRoundTrip(t *testing.T) {
	mesh := explode(t, geometry.NewCube(2))
	table, err := BuildTable(mesh, 1)
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}

	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		gi := table.GroupForTriangle(tri)
		found := false
		for _, owned := range table.Group(gi).Triangles {
			if owned == tri {
				found = true
			}
		}
		if !found {
			t.Errorf("triangle %d maps to group %d which does not own it", tri, gi)
		}
	}
}

func TestBuildTableParallelPlanesStaySeparate(t *testing.T) {
	// Same normal, different plane offset: two groups.
	src := &geometry.SharedMesh{
		Positions: []mgl32.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {0, 1, 0},
			{-1, -1, 3}, {1, -1, 3}, {0, 1, 3},
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	table, err := BuildTable(explode(t, src), 1)
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestBuildTableRejectsBadInput(t *testing.T) {
	mesh := explode(t, geometry.NewCube(1))
	if _, err := BuildTable(mesh, 0); err == nil {
		t.Error("expected error for maxHP 0")
	}
	if _, err := BuildTable(nil, 1); err != geometry.ErrEmptyMesh {
		t.Errorf("BuildTable(nil) error = %v, want ErrEmptyMesh", err)
	}
	if _, err := BuildTable(&geometry.Mesh{}, 1); err != geometry.ErrEmptyMesh {
		t.Errorf("BuildTable(empty) error = %v, want ErrEmptyMesh", err)
	}
}

func TestGroupCenterAndRadius(t *testing.T) {
	// Single +z quad of side 2 centered on origin.
	src := &geometry.SharedMesh{
		Positions: []mgl32.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	table, err := BuildTable(explode(t, src), 1)
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}

	g := table.Group(0)
	if g.Center.Len() > 0.2 {
		t.Errorf("Center = %v, want near origin", g.Center)
	}
	// Farthest corner sits at sqrt(2)-ish from center.
	if g.Radius < 1.0 || g.Radius > 1.6 {
		t.Errorf("Radius = %f, want about sqrt(2)", g.Radius)
	}
}

func TestTierColorClamps(t *testing.T) {
	if TierColor(-5) != TierColor(0) {
		t.Error("negative hp should clamp to tier 0")
	}
	if TierColor(99) != TierColor(6) {
		t.Error("large hp should clamp to tier 6")
	}
	if TierColor(0) != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("tier 0 = %v, want white", TierColor(0))
	}
}
