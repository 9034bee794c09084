package dot

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings a program reads from its TOML file.
//
//	title = "Dot."
//	width = 1280
//	height = 720
//	tps = 60
//	log_level = "info"
//	debug_overlay = true
//	initial_scene = "Default"
//
//	[bindings]
//	"Change Scene" = "Space"
type Config struct {
	Title         string            `toml:"title"`
	Width         int               `toml:"width"`
	Height        int               `toml:"height"`
	TPS           int               `toml:"tps"`
	LogLevel      string            `toml:"log_level"`
	Debug         bool              `toml:"debug"`
	ShowFPS       bool              `toml:"show_fps"`
	DebugOverlay  bool              `toml:"debug_overlay"`
	InitialScene  string            `toml:"initial_scene"`
	ScreenshotDir string            `toml:"screenshot_dir"`
	Bindings      map[string]string `toml:"bindings"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:    "Dot.",
		Width:    1280,
		Height:   720,
		TPS:      60,
		LogLevel: "info",
	}
}

// ParseConfig decodes TOML over DefaultConfig, so omitted keys keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, err := c.KeyBindings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, or info if it cannot be parsed.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// KeyBindings resolves the [bindings] table to ebiten keys. Key names are
// matched case-insensitively ("Space", "ArrowUp", "A").
func (c Config) KeyBindings() (map[string]ebiten.Key, error) {
	out := make(map[string]ebiten.Key, len(c.Bindings))
	for _, action := range slices.Sorted(maps.Keys(c.Bindings)) {
		k, err := parseKey(c.Bindings[action])
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", action, err)
		}
		out[action] = k
	}
	return out, nil
}

// Apply pushes the runtime settings into e: log level, debug mode and key
// bindings, screenshot directory. Window settings are applied by Run.
func (c Config) Apply(e *Engine) error {
	bindings, err := c.KeyBindings()
	if err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	e.Logger.SetLevel(c.Level())
	e.SetDebugMode(c.Debug)
	if c.ScreenshotDir != "" {
		e.screenshotDir = c.ScreenshotDir
	}
	for action, k := range bindings {
		e.Input.BindAction(action, k)
	}
	return nil
}

func parseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}
