package face

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/engine/collide"
	"github.com/okatsuro/prismbreak/internal/engine/geometry"
)

// DefaultBackfaceThreshold rejects hits striking the far side of a face.
const DefaultBackfaceThreshold = 0.2

// resolverBackoff is how far behind the reported impact point the fallback
// ray starts, so slight overshoot still finds the face.
const resolverBackoff = 0.5

// Config tunes the hit pipeline for one shape.
type Config struct {
	MaxHP             int
	RestoreDuration   time.Duration
	BackfaceThreshold float32       // 0 means DefaultBackfaceThreshold
	Links             map[int][]int // group -> linked sub-face groups
}

// Manager owns the polygon group table for one shape and applies hits to
// it. All coordinates passed in are mesh-local. Mutation happens only
// through ApplyHit paths and Tick; both run on the game tick, never
// concurrently.
type Manager struct {
	mesh  *geometry.Mesh
	table *Table

	fills    []float32 // per-vertex restore fill, 1 = committed color
	restores map[int]*restoreState

	restoreDuration   float32
	backfaceThreshold float32

	totalReps     int // groups that count toward completion
	completedReps int

	propagating bool // re-entrancy guard for linked-face propagation

	log *zap.Logger

	// Event callbacks; fired exactly once per transition. Nil callbacks
	// are skipped.
	OnHit       func(group int)
	OnCompleted func(group int)
	OnRestored  func(group int)
}

// New builds the group table for an exploded mesh and initializes every
// group at full health. Link configuration errors surface here, not at hit
// time.
func New(mesh *geometry.Mesh, cfg Config) (*Manager, error) {
	table, err := BuildTable(mesh, cfg.MaxHP)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		mesh:              mesh,
		table:             table,
		fills:             make([]float32, len(mesh.Vertices)),
		restores:          make(map[int]*restoreState),
		restoreDuration:   float32(cfg.RestoreDuration.Seconds()),
		backfaceThreshold: cfg.BackfaceThreshold,
		log:               zap.NewNop(),
	}
	if m.restoreDuration <= 0 {
		m.restoreDuration = 0.8
	}
	if m.backfaceThreshold == 0 {
		m.backfaceThreshold = DefaultBackfaceThreshold
	}

	if err := m.applyLinks(cfg.Links); err != nil {
		return nil, err
	}

	for i := 0; i < table.Len(); i++ {
		g := table.Group(i)
		if !g.linkTarget {
			m.totalReps++
		}
		m.commitGroupColor(g, TierColor(g.HP))
	}
	for i := range m.fills {
		m.fills[i] = 1
	}

	return m, nil
}

// applyLinks validates and installs the author-configured link graph.
// Propagation is one level deep: a link target may not declare links of its
// own, which makes the propagation bound explicit.
func (m *Manager) applyLinks(links map[int][]int) error {
	for from, tos := range links {
		if from < 0 || from >= m.table.Len() {
			return fmt.Errorf("face: link source %d out of range (%d groups)", from, m.table.Len())
		}
		for _, to := range tos {
			if to < 0 || to >= m.table.Len() {
				return fmt.Errorf("face: link target %d out of range (%d groups)", to, m.table.Len())
			}
			if to == from {
				return fmt.Errorf("face: group %d links to itself", from)
			}
		}
	}
	for from, tos := range links {
		g := m.table.Group(from)
		g.Links = append(g.Links, tos...)
		for _, to := range tos {
			m.table.Group(to).linkTarget = true
		}
	}
	for from := range links {
		if m.table.Group(from).linkTarget {
			return fmt.Errorf("face: group %d is both a link source and a link target", from)
		}
	}
	return nil
}

// SetLogger attaches a logger; the default is a no-op.
func (m *Manager) SetLogger(log *zap.Logger) {
	if log != nil {
		m.log = log
	}
}

// Mesh returns the exploded mesh this manager mutates.
func (m *Manager) Mesh() *geometry.Mesh {
	return m.mesh
}

// Table returns the polygon group table.
func (m *Manager) Table() *Table {
	return m.table
}

// Fills returns the per-vertex restore fill channel for the renderer.
func (m *Manager) Fills() []float32 {
	return m.fills
}

// CompletedCount returns the number of completed groups, excluding linked
// sub-faces.
func (m *Manager) CompletedCount() int {
	return m.completedReps
}

// RepresentativeCount returns the number of groups that count toward
// completion.
func (m *Manager) RepresentativeCount() int {
	return m.totalReps
}

// AllCompleted reports whether every counting group is depleted.
func (m *Manager) AllCompleted() bool {
	return m.completedReps == m.totalReps
}

// ResolveAndApplyHit maps an impact to a polygon group and applies the hit.
// point and forward are mesh-local; triangleIndex is the collision query's
// triangle index, or negative when unavailable. An out-of-range index
// transparently falls back to the ray resolver, then to the
// nearest-centroid triangle; on a non-empty mesh some polygon is always
// resolved. Returns false when the hit was rejected (back face).
func (m *Manager) ResolveAndApplyHit(point, forward mgl32.Vec3, triangleIndex int) bool {
	tri := triangleIndex
	if tri < 0 || tri >= m.mesh.TriangleCount() {
		ray := collide.Ray{
			Origin:    point.Sub(forward.Mul(resolverBackoff)),
			Direction: forward,
		}
		if hit, ok := collide.CastMesh(ray, m.mesh, 0); ok {
			tri = hit.Triangle
		} else {
			tri = collide.NearestTriangle(m.mesh, point)
		}
	}
	if tri < 0 {
		return false
	}
	return m.HitTriangle(tri, forward)
}

// HitTriangle applies a hit to the group owning the given triangle.
// forward is the projectile's mesh-local flight direction, used for
// back-face rejection.
func (m *Manager) HitTriangle(tri int, forward mgl32.Vec3) bool {
	g := m.table.Group(m.table.GroupForTriangle(tri))

	if g.Normal.Dot(forward) > m.backfaceThreshold {
		return false
	}

	return m.applyHit(g)
}

// applyHit runs one step of the per-group state machine and mirrors the
// result to linked groups. Re-entrant calls during propagation are silently
// ignored.
func (m *Manager) applyHit(g *Group) bool {
	if m.propagating {
		return false
	}

	// A re-hit during a live restore supersedes the animation and lands
	// as a fresh hit against the restored HP.
	m.cancelRestore(g.ID)

	restored := false
	if g.Completed {
		g.HP = 1
		g.Completed = false
		if !g.linkTarget {
			m.completedReps--
		}
		m.commitGroupColor(g, TierColor(1))
		m.startRestore(g)
		restored = true
	} else {
		g.HP--
		if g.HP == 0 {
			g.Completed = true
			if !g.linkTarget {
				m.completedReps++
			}
			m.commitGroupColor(g, g.Base)
		} else {
			m.commitGroupColor(g, TierColor(g.HP))
		}
	}

	m.propagate(g, restored)

	switch {
	case restored:
		m.log.Debug("group restored", zap.Int("group", g.ID))
		if m.OnRestored != nil {
			m.OnRestored(g.ID)
		}
	case g.Completed:
		m.log.Debug("group completed", zap.Int("group", g.ID))
		if m.OnCompleted != nil {
			m.OnCompleted(g.ID)
		}
	default:
		if m.OnHit != nil {
			m.OnHit(g.ID)
		}
	}

	return true
}

// propagate copies the origin group's state to its linked sub-faces.
// Linked groups fire no events and never touch the completion tally.
func (m *Manager) propagate(origin *Group, restored bool) {
	if len(origin.Links) == 0 {
		return
	}

	m.propagating = true
	for _, li := range origin.Links {
		lg := m.table.Group(li)
		m.cancelRestore(lg.ID)
		lg.HP = origin.HP
		lg.Completed = origin.Completed
		if origin.Completed {
			m.commitGroupColor(lg, lg.Base)
		} else {
			m.commitGroupColor(lg, TierColor(lg.HP))
		}
		if restored {
			m.startRestore(lg)
		}
	}
	m.propagating = false
}

func (m *Manager) commitGroupColor(g *Group, color mgl32.Vec3) {
	for _, tri := range g.Triangles {
		m.mesh.SetTriangleColor(tri, color)
	}
}
