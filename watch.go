package dot

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a config file when it changes on disk. Events are
// collected in the background and applied from the frame loop through Poll,
// so the engine is only touched from one goroutine.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	// OnReload is called from Poll with the newly parsed config.
	OnReload func(cfg Config)
	// OnError is called from Poll when the file cannot be read or parsed.
	OnError func(err error)
}

// WatchConfig starts watching path. The containing directory is watched so
// editors that replace the file on save are handled.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	return &ConfigWatcher{path: abs, watcher: w}, nil
}

// Poll drains pending file events without blocking. If the watched file was
// written or recreated it is reloaded once and Poll reports true.
func (cw *ConfigWatcher) Poll() bool {
	changed := false
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return cw.reload(changed)
			}
			if filepath.Clean(ev.Name) == cw.path && ev.Has(fsnotify.Write|fsnotify.Create) {
				changed = true
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return cw.reload(changed)
			}
			if cw.OnError != nil {
				cw.OnError(fmt.Errorf("watch config: %w", err))
			}
		default:
			return cw.reload(changed)
		}
	}
}

func (cw *ConfigWatcher) reload(changed bool) bool {
	if !changed {
		return false
	}
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		if cw.OnError != nil {
			cw.OnError(err)
		}
		return false
	}
	if cw.OnReload != nil {
		cw.OnReload(cfg)
	}
	return true
}

// Close stops watching.
func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}
