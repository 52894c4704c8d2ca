package states

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/engine/input"
	"github.com/okatsuro/prismbreak/internal/engine/lighting"
	"github.com/okatsuro/prismbreak/internal/game/projectile"
	"github.com/okatsuro/prismbreak/internal/game/stage"
)

// clearLinger is how long the cleared solid stays on screen before the
// results state takes over.
const clearLinger = 1.2

// PlayingState runs one stage: firing, camera control, and the stage
// simulation.
type PlayingState struct {
	app   *App
	index int

	stage *stage.Stage
	pool  *projectile.Pool

	cooldown   float32
	dragging   bool
	clearDelay float32
}

// NewPlayingState creates the playing state for the given stage index.
func NewPlayingState(app *App, index int) *PlayingState {
	return &PlayingState{app: app, index: index}
}

// Enter builds the stage and wires its events to audio cues.
func (s *PlayingState) Enter() error {
	def := s.app.Stages[s.index]

	st, err := stage.New(s.index, def, s.app.tuning(), s.app.Log)
	if err != nil {
		return fmt.Errorf("building stage %d: %w", s.index, err)
	}
	s.stage = st

	st.OnHit = func(int) { s.app.Audio.PlayHit() }
	st.OnCompleted = func(int) { s.app.Audio.PlayCompleted() }
	st.OnRestored = func(int) { s.app.Audio.PlayRestored() }

	gp := s.app.Cfg.Gameplay
	s.pool = projectile.NewPool(gp.PoolSize, gp.ProjectileSpeed, gp.ProjectileLifetime)

	s.cooldown = 0
	s.clearDelay = 0
	s.app.Camera.FitToRadius(def.Size)

	s.app.Log.Info("stage started",
		zap.Int("index", s.index),
		zap.String("name", def.Name),
	)
	return nil
}

// Exit retires any projectiles still in flight.
func (s *PlayingState) Exit() error {
	s.pool.Clear()
	return nil
}

// Update advances the stage simulation and projectile flight.
func (s *PlayingState) Update(dt float64) error {
	fdt := float32(dt)

	if s.cooldown > 0 {
		s.cooldown -= fdt
	}

	s.stage.Tick(fdt)
	s.pool.Tick(fdt, s.stage)

	if s.stage.Cleared() {
		s.clearDelay += fdt
		if s.clearDelay >= clearLinger {
			s.app.States.Change(NewClearedState(s.app, s.index, s.stage))
		}
	}
	return nil
}

// Render draws the solid and the projectiles in flight.
func (s *PlayingState) Render() error {
	r := s.app.Renderer
	view := s.app.Camera.ViewMatrix()

	r.UploadMesh(s.stage.Mesh(), s.stage.Faces().Fills())
	r.DrawMesh(s.stage.ModelMatrix(), view, lighting.Default())

	var positions []mgl32.Vec3
	s.pool.Each(func(p *projectile.Projectile) {
		positions = append(positions, p.Position())
	})
	r.DrawPoints(positions, view, 40, mgl32.Vec3{1, 0.95, 0.7})
	return nil
}

// HandleInput maps mouse and keyboard to firing and camera control.
func (s *PlayingState) HandleInput(ev input.Event) error {
	switch ev.Type {
	case input.EventMouseDown:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			s.fire()
		case sdl.BUTTON_RIGHT:
			s.dragging = true
		}

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_RIGHT {
			s.dragging = false
		}

	case input.EventMouseMove:
		if s.dragging {
			s.app.Camera.HandleDrag(float32(ev.RelX), float32(ev.RelY))
		}

	case input.EventMouseWheel:
		s.app.Camera.HandleZoom(ev.Wheel)

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_SPACE:
			s.fire()
		case sdl.SCANCODE_R:
			s.app.States.Change(NewPlayingState(s.app, s.index))
		}
	}
	return nil
}

// fire spawns a projectile from the camera along its aim direction.
func (s *PlayingState) fire() {
	if s.cooldown > 0 || s.stage.Cleared() {
		return
	}

	p := s.pool.Spawn(s.app.Camera.Position(), s.app.Camera.Forward())
	if p == nil {
		s.app.Log.Debug("projectile pool exhausted")
		return
	}

	s.stage.AddShot()
	s.app.Audio.PlayFire()
	s.cooldown = float32(s.app.Cfg.Gameplay.FireCooldown.Seconds())
}
