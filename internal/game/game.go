// Package game implements the main game loop and state management.
package game

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/okatsuro/prismbreak/internal/config"
	"github.com/okatsuro/prismbreak/internal/engine/audio"
	"github.com/okatsuro/prismbreak/internal/engine/camera"
	"github.com/okatsuro/prismbreak/internal/engine/debug"
	"github.com/okatsuro/prismbreak/internal/engine/input"
	"github.com/okatsuro/prismbreak/internal/engine/renderer"
	"github.com/okatsuro/prismbreak/internal/engine/window"
	"github.com/okatsuro/prismbreak/internal/game/records"
	"github.com/okatsuro/prismbreak/internal/game/stage"
	"github.com/okatsuro/prismbreak/internal/game/states"
	"github.com/okatsuro/prismbreak/internal/logger"
)

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	records  *records.Store
	camera   *camera.OrbitCamera
	states   *states.Manager

	screenshots *debug.ScreenshotCapture
	log         *zap.Logger
}

// New creates a new game instance. The window and OpenGL context come up
// here; the first state is the title screen.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		cfg: cfg,
		log: log,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      "prismbreak",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		// Playable without sound.
		log.Warn("audio init failed", zap.Error(err))
	}
	g.audio.SetMasterVolume(cfg.Audio.MasterVolume)
	g.audio.SetSFXVolume(cfg.Audio.SFXVolume)
	g.audio.SetMuted(cfg.Audio.Muted)

	g.records, err = records.Open(recordsPath(cfg))
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("opening records store: %w", err)
	}

	defs, err := loadStages(cfg)
	if err != nil {
		g.records.Close()
		g.renderer.Close()
		g.window.Close()
		return nil, err
	}

	g.camera = camera.NewOrbitCamera()
	g.camera.DragSensitivity = cfg.Controls.DragSensitivity
	g.camera.ZoomSensitivity = cfg.Controls.ZoomSensitivity
	g.camera.InvertY = cfg.Controls.InvertY

	g.screenshots = debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "screenshots"), "prismbreak")

	g.states = states.NewManager()
	app := &states.App{
		Cfg:      cfg,
		Log:      log,
		Renderer: g.renderer,
		Audio:    g.audio,
		Camera:   g.camera,
		Records:  g.records,
		Stages:   defs,
		States:   g.states,
	}
	g.states.Change(states.NewTitleState(app))

	log.Info("game initialized", zap.Int("stages", len(defs)))
	return g, nil
}

// loadStages reads the configured stage list, or falls back to the
// built-in progression.
func loadStages(cfg *config.Config) ([]stage.Def, error) {
	if cfg.Data.StagesPath == "" {
		return stage.DefaultStages(), nil
	}
	defs, err := stage.LoadFile(cfg.Data.StagesPath)
	if err != nil {
		return nil, fmt.Errorf("loading stages: %w", err)
	}
	return defs, nil
}

// recordsPath resolves the records database location. Relative paths land
// in the config directory.
func recordsPath(cfg *config.Config) string {
	p := cfg.Data.RecordsPath
	if p == "" {
		p = "records.db"
	}
	if !filepath.IsAbs(p) {
		dir := config.ConfigDir()
		os.MkdirAll(dir, 0755)
		p = filepath.Join(dir, p)
	}
	return p
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.renderer.Resize(event.Width, event.Height)
				continue
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					g.running = false
					continue
				case sdl.SCANCODE_F12:
					g.captureScreenshot()
					continue
				}
			}
			if err := g.states.HandleInput(event); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}

		// 2. Update game state
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		g.renderer.Begin()
		if err := g.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		g.renderer.End()

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.cfg.Graphics.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("prismbreak (%d fps)", frameCount))
			}
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("dt_ms", dt*1000),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// captureScreenshot saves the current frame; failures are logged only.
func (g *Game) captureScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.records != nil {
		g.records.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
