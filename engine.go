package dot

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// EngineConfig configures NewEngine. The zero value is usable.
type EngineConfig struct {
	// Logger receives engine, scene and scheduler logs. Nil discards them.
	Logger *log.Logger
	// Keys is the physical key source. Nil means injected input only; Run
	// attaches EbitenKeys when none is set.
	Keys KeySource
	// Debug enables per-frame stats and extra tree checks.
	Debug bool
	// Overlay, when non-nil, receives the scene hierarchy dump each time the
	// current scene changes.
	Overlay io.Writer
	// ScreenshotDir receives screenshots queued with Screenshot. Empty means
	// DefaultScreenshotDir.
	ScreenshotDir string
}

// Engine is the context object shared by everything in a running program:
// the scene registry, the coroutine scheduler and the input bindings. Build
// one per program (or per test) and pass it to whatever needs it.
type Engine struct {
	Scenes     *SceneManager
	Coroutines *Scheduler
	Input      *Input
	Logger     *log.Logger

	frame      uint64
	debug      bool
	testRunner *TestRunner
	overlay    *DebugOverlay
	quit       bool

	screenshotDir   string
	screenshotQueue []string
}

// NewEngine creates an engine with no scenes.
func NewEngine(cfg EngineConfig) *Engine {
	logger := loggerOr(cfg.Logger)
	e := &Engine{
		Scenes:     NewSceneManager(logger),
		Coroutines: NewScheduler(logger),
		Input:      NewInput(cfg.Keys),
		Logger:     logger,

		screenshotDir: cfg.ScreenshotDir,
	}
	if cfg.Overlay != nil {
		e.overlay = NewDebugOverlay(cfg.Overlay)
	}
	e.SetDebugMode(cfg.Debug)
	return e
}

// SetDebugMode toggles per-frame stats and tree checks.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled {
		globalDebug = e.Logger
	} else if globalDebug == e.Logger {
		globalDebug = nil
	}
}

// Frame returns the number of completed Update calls.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// StartCoroutine is shorthand for e.Coroutines.Start.
func (e *Engine) StartCoroutine(step Step) *Coroutine {
	return e.Coroutines.Start(step)
}

// Quit asks the run loop to stop after the current frame.
func (e *Engine) Quit() {
	e.quit = true
}

// QuitRequested reports whether Quit has been called.
func (e *Engine) QuitRequested() bool {
	return e.quit
}

// Update advances one frame: scripted input, input state, coroutines, then the
// current scene (input hook followed by the tree update).
func (e *Engine) Update(dt float64) {
	if e.overlay != nil {
		e.overlay.Refresh(e.Scenes)
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}

	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}
	e.Input.Update()
	if e.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}
	e.Coroutines.Tick(dt)
	if e.debug {
		stats.coroutineTime = time.Since(t0)
		t0 = time.Now()
	}
	e.Scenes.ProcessInput()
	e.Scenes.Update(dt)
	if e.debug {
		stats.sceneTime = time.Since(t0)
		if cur := e.Scenes.Current(); cur != nil && cur.Root() != nil {
			stats.nodeCount = cur.Root().Count()
		}
		stats.coroutines = e.Coroutines.Len()
	}

	e.frame++
	e.debugLog(stats)
}

// Draw renders the current scene.
func (e *Engine) Draw(r Renderer) {
	e.Scenes.Draw(r)
}

// Shutdown unloads every scene and stops every coroutine.
func (e *Engine) Shutdown() {
	e.Scenes.UnloadAllScenes()
	e.Coroutines.StopAll()
	e.SetDebugMode(false)
	e.Logger.Info("shutdown", "frames", e.frame)
}
