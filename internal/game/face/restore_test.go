package face

import (
	"testing"
	"time"
)

func restoreSetup(t *testing.T) *Manager {
	t.Helper()
	m := newManager(t, twoFaceMesh(t), Config{MaxHP: 1, RestoreDuration: time.Second})
	m.HitTriangle(0, frontal) // deplete
	m.HitTriangle(0, frontal) // restore -> animation live
	return m
}

func TestRestoreFillSpreadsMonotonically(t *testing.T) {
	m := restoreSetup(t)
	g := m.Table().Group(0)

	// Fill starts at zero across the group.
	for _, tri := range g.Triangles {
		for j := 0; j < 3; j++ {
			if m.Fills()[3*tri+j] != 0 {
				t.Fatalf("fill not reset at restore start")
			}
		}
	}

	prev := make([]float32, len(m.Fills()))
	for step := 0; step < 10; step++ {
		copy(prev, m.Fills())
		m.Tick(0.1)
		for _, tri := range g.Triangles {
			for j := 0; j < 3; j++ {
				vi := 3*tri + j
				if m.Fills()[vi] < prev[vi] {
					t.Fatalf("fill regressed at step %d vertex %d: %f -> %f",
						step, vi, prev[vi], m.Fills()[vi])
				}
				if m.Fills()[vi] < 0 || m.Fills()[vi] > 1 {
					t.Fatalf("fill %f outside [0,1]", m.Fills()[vi])
				}
			}
		}
	}
}

func TestRestoreCompletesAndCommits(t *testing.T) {
	m := restoreSetup(t)

	m.Tick(1.5)

	if m.ActiveRestores() != 0 {
		t.Errorf("live restores = %d, want 0 after duration elapsed", m.ActiveRestores())
	}
	g := m.Table().Group(0)
	for _, tri := range g.Triangles {
		for j := 0; j < 3; j++ {
			if m.Fills()[3*tri+j] != 1 {
				t.Errorf("fill not committed to 1 after completion")
			}
		}
	}
}

func TestRestoreProgressClamped(t *testing.T) {
	m := restoreSetup(t)

	// A giant tick must not push fills past 1 or leave the animation live.
	m.Tick(100)
	m.Tick(100)
	for i, f := range m.Fills() {
		if f < 0 || f > 1 {
			t.Fatalf("fill[%d] = %f outside [0,1]", i, f)
		}
	}
	if m.ActiveRestores() != 0 {
		t.Error("animation survived past its duration")
	}
}

func TestAtMostOneAnimationPerGroup(t *testing.T) {
	m := restoreSetup(t)
	m.Tick(0.2)

	// Deplete and restore again mid-animation: still exactly one.
	m.HitTriangle(0, frontal) // cancels, depletes
	if m.ActiveRestores() != 0 {
		t.Fatalf("live restores = %d after cancel, want 0", m.ActiveRestores())
	}
	m.HitTriangle(0, frontal) // restores again
	if m.ActiveRestores() != 1 {
		t.Fatalf("live restores = %d, want 1", m.ActiveRestores())
	}
}

func TestEaseOutCubic(t *testing.T) {
	if got := easeOutCubic(0); got != 0 {
		t.Errorf("easeOutCubic(0) = %f, want 0", got)
	}
	if got := easeOutCubic(1); got != 1 {
		t.Errorf("easeOutCubic(1) = %f, want 1", got)
	}
	// Ease-out: front-loaded progress.
	if got := easeOutCubic(0.5); got <= 0.5 {
		t.Errorf("easeOutCubic(0.5) = %f, want > 0.5", got)
	}
}
