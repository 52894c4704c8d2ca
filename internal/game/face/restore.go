package face

// restoreState is one live heal-back animation. At most one exists per
// group; a re-hit supersedes it.
type restoreState struct {
	group    int
	elapsed  float32
	duration float32
}

// easeOutCubic maps linear progress to the spread curve.
func easeOutCubic(p float32) float32 {
	q := 1 - p
	return 1 - q*q*q
}

// Tick advances all live restore animations. Progress is monotonic and
// clamped; finished animations are removed. The spread is written into the
// per-vertex fill channel: fill 0 shows the group's base color, fill 1 its
// committed color, with a soft edge expanding from the group center.
func (m *Manager) Tick(dt float32) {
	for id, rs := range m.restores {
		rs.elapsed += dt
		p := rs.elapsed / rs.duration
		if p >= 1 {
			m.finishRestore(id)
			continue
		}

		g := m.table.Group(id)
		edge := 0.25*g.Radius + 1e-6
		radius := easeOutCubic(p) * (g.Radius + edge)

		for _, tri := range g.Triangles {
			for j := 0; j < 3; j++ {
				vi := 3*tri + j
				d := m.mesh.Vertices[vi].Position.Sub(g.Center).Len()
				w := (radius - d) / edge
				if w < 0 {
					w = 0
				} else if w > 1 {
					w = 1
				}
				m.fills[vi] = w
			}
		}
	}
}

// startRestore enqueues the spread animation for a freshly restored group,
// superseding any previous animation for it.
func (m *Manager) startRestore(g *Group) {
	m.restores[g.ID] = &restoreState{
		group:    g.ID,
		duration: m.restoreDuration,
	}
	m.setGroupFill(g, 0)
}

// cancelRestore drops a live animation without committing its fill. The
// caller decides the group's next visual state.
func (m *Manager) cancelRestore(id int) {
	if _, ok := m.restores[id]; !ok {
		return
	}
	delete(m.restores, id)
	m.setGroupFill(m.table.Group(id), 1)
}

// finishRestore completes an animation, committing the full fill.
func (m *Manager) finishRestore(id int) {
	delete(m.restores, id)
	m.setGroupFill(m.table.Group(id), 1)
}

// ActiveRestores returns the number of live restore animations.
func (m *Manager) ActiveRestores() int {
	return len(m.restores)
}

// Restoring reports whether the given group has a live restore animation.
func (m *Manager) Restoring(group int) bool {
	_, ok := m.restores[group]
	return ok
}

func (m *Manager) setGroupFill(g *Group, w float32) {
	for _, tri := range g.Triangles {
		for j := 0; j < 3; j++ {
			m.fills[3*tri+j] = w
		}
	}
}
