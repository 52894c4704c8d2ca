package states

import (
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/config"
	"github.com/okatsuro/prismbreak/internal/engine/audio"
	"github.com/okatsuro/prismbreak/internal/engine/camera"
	"github.com/okatsuro/prismbreak/internal/engine/renderer"
	"github.com/okatsuro/prismbreak/internal/game/records"
	"github.com/okatsuro/prismbreak/internal/game/stage"
)

// App bundles the services every state needs. The game loop owns the
// lifetimes; states only borrow.
type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	Renderer *renderer.Renderer
	Audio    *audio.Manager
	Camera   *camera.OrbitCamera
	Records  *records.Store
	Stages   []stage.Def
	States   *Manager
}

// tuning derives the per-stage tuning from the loaded config.
func (a *App) tuning() stage.Tuning {
	return stage.Tuning{
		RestoreDuration: a.Cfg.Gameplay.RestoreDuration,
	}
}
