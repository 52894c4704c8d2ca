package states

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/engine/input"
	"github.com/okatsuro/prismbreak/internal/engine/lighting"
	"github.com/okatsuro/prismbreak/internal/game/records"
	"github.com/okatsuro/prismbreak/internal/game/stage"
)

// ClearedState shows the cleared solid and the stage result, and submits
// the run to the record store.
type ClearedState struct {
	app   *App
	index int
	stage *stage.Stage

	best     records.Record
	hasBest  bool
	improved bool
}

// NewClearedState creates the results state for a finished stage.
func NewClearedState(app *App, index int, st *stage.Stage) *ClearedState {
	return &ClearedState{app: app, index: index, stage: st}
}

// Enter submits the result; a failed submit is logged, not fatal.
func (s *ClearedState) Enter() error {
	rec := records.Record{
		Stage:     s.index,
		ClearTime: s.stage.ClearTime(),
		ShotCount: s.stage.Shots(),
	}

	if s.app.Records != nil {
		improved, err := s.app.Records.Submit(rec)
		if err != nil {
			s.app.Log.Warn("storing record failed", zap.Error(err))
		}
		s.improved = improved

		best, ok, err := s.app.Records.Best(s.index)
		if err != nil {
			s.app.Log.Warn("reading record failed", zap.Error(err))
		}
		s.best, s.hasBest = best, ok
	}

	s.app.Log.Info("stage result",
		zap.Int("index", s.index),
		zap.String("name", s.stage.Name()),
		zap.Float64("clear_time", rec.ClearTime),
		zap.Int("shots", rec.ShotCount),
		zap.Bool("new_best", s.improved),
		zap.Float64("best_time", s.best.ClearTime),
	)
	return nil
}

// Exit is a no-op; the stage is dropped with the state.
func (s *ClearedState) Exit() error {
	return nil
}

// Update keeps the cleared solid turning as a backdrop.
func (s *ClearedState) Update(dt float64) error {
	s.stage.Tick(float32(dt))
	return nil
}

// Render draws the cleared solid.
func (s *ClearedState) Render() error {
	r := s.app.Renderer
	r.UploadMesh(s.stage.Mesh(), s.stage.Faces().Fills())
	r.DrawMesh(s.stage.ModelMatrix(), s.app.Camera.ViewMatrix(), lighting.Default())
	return nil
}

// HandleInput advances to the next stage, retries, or returns to the
// title after the last stage.
func (s *ClearedState) HandleInput(ev input.Event) error {
	if ev.Type != input.EventKeyDown && ev.Type != input.EventMouseDown {
		return nil
	}

	if ev.Type == input.EventKeyDown && ev.Key == sdl.SCANCODE_R {
		s.app.States.Change(NewPlayingState(s.app, s.index))
		return nil
	}

	advance := ev.Type == input.EventMouseDown ||
		ev.Key == sdl.SCANCODE_SPACE || ev.Key == sdl.SCANCODE_RETURN
	if !advance {
		return nil
	}

	if next := s.index + 1; next < len(s.app.Stages) {
		s.app.States.Change(NewPlayingState(s.app, next))
	} else {
		s.app.States.Change(NewTitleState(s.app))
	}
	return nil
}
