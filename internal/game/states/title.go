package states

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/engine/input"
	"github.com/okatsuro/prismbreak/internal/engine/lighting"
	"github.com/okatsuro/prismbreak/internal/game/stage"
)

// TitleState shows the first stage's solid slowly turning until the
// player starts a run.
type TitleState struct {
	app     *App
	preview *stage.Stage
}

// NewTitleState creates the title state.
func NewTitleState(app *App) *TitleState {
	return &TitleState{app: app}
}

// Enter builds the preview solid.
func (s *TitleState) Enter() error {
	def := s.app.Stages[0]
	def.RotationPattern = stage.PatternSingleAxis
	def.RotationSpeed = 0.3

	preview, err := stage.New(0, def, s.app.tuning(), s.app.Log)
	if err != nil {
		return err
	}
	s.preview = preview

	s.app.Camera.FitToRadius(def.Size)

	s.app.Log.Info("title",
		zap.Int("stages", len(s.app.Stages)),
	)
	return nil
}

// Exit releases the preview.
func (s *TitleState) Exit() error {
	s.preview = nil
	return nil
}

// Update keeps the preview turning.
func (s *TitleState) Update(dt float64) error {
	s.preview.Tick(float32(dt))
	return nil
}

// Render draws the preview solid.
func (s *TitleState) Render() error {
	r := s.app.Renderer
	r.UploadMesh(s.preview.Mesh(), s.preview.Faces().Fills())
	r.DrawMesh(s.preview.ModelMatrix(), s.app.Camera.ViewMatrix(), lighting.Default())
	return nil
}

// HandleInput starts a run on click or space.
func (s *TitleState) HandleInput(ev input.Event) error {
	start := false
	switch ev.Type {
	case input.EventMouseDown:
		start = ev.Button == sdl.BUTTON_LEFT
	case input.EventKeyDown:
		start = ev.Key == sdl.SCANCODE_SPACE || ev.Key == sdl.SCANCODE_RETURN
	case input.EventMouseWheel:
		s.app.Camera.HandleZoom(ev.Wheel)
	}
	if start {
		s.app.States.Change(NewPlayingState(s.app, 0))
	}
	return nil
}
