package dot

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts an Engine to ebiten.Game with a fixed timestep of 1/TPS.
type game struct {
	engine   *Engine
	cfg      Config
	renderer *ScreenRenderer
	watcher  *ConfigWatcher
	fps      *Node
}

func (g *game) Update() error {
	if g.watcher != nil {
		g.watcher.Poll()
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.engine.Update(dt)
	if g.fps != nil {
		g.fps.Update(dt)
	}
	if g.engine.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorLightGray.toRGBA())
	g.renderer.Begin(screen)
	g.engine.Draw(g.renderer)
	if g.fps != nil {
		g.fps.Draw(g.renderer)
	}
	g.engine.flushScreenshots(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// applyWindow pushes window settings to ebiten.
func (g *game) applyWindow() {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetTPS(g.cfg.TPS)
}

// Run opens a window and drives e until the window is closed or e.Quit is
// called. cfg is applied to e first, and if cfg.InitialScene is set that
// scene is changed to by name. Every scene is unloaded on return.
func Run(e *Engine, cfg Config) error {
	return run(e, cfg, nil)
}

// RunWithConfigFile loads the config at path, runs e with it and reapplies
// the file whenever it changes while running.
func RunWithConfigFile(e *Engine, path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	w, err := WatchConfig(path)
	if err != nil {
		e.Logger.Warn("config hot reload disabled", "err", err)
		w = nil
	}
	if w != nil {
		defer w.Close()
	}
	return run(e, cfg, w)
}

func run(e *Engine, cfg Config, w *ConfigWatcher) error {
	if err := cfg.Apply(e); err != nil {
		return err
	}
	if !e.Input.HasSource() {
		e.Input.SetSource(EbitenKeys)
	}
	g := &game{engine: e, cfg: cfg, renderer: NewScreenRenderer(), watcher: w}
	if cfg.ShowFPS {
		g.fps = NewFPSWidget()
	}
	if cfg.DebugOverlay && e.overlay == nil {
		e.overlay = NewDebugOverlay(defaultOverlayWriter())
	}
	if w != nil {
		w.OnReload = func(next Config) {
			if err := next.Apply(e); err != nil {
				e.Logger.Error("config reload failed", "err", err)
				return
			}
			g.cfg = next
			g.applyWindow()
			e.Logger.Info("config reloaded", "path", w.path)
		}
		w.OnError = func(err error) {
			e.Logger.Error("config reload failed", "err", err)
		}
	}
	if cfg.InitialScene != "" {
		if err := e.Scenes.ChangeSceneByName(cfg.InitialScene); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	g.applyWindow()
	e.Logger.Info("running", "title", cfg.Title, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "tps", cfg.TPS)
	err := ebiten.RunGame(g)
	e.Shutdown()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
