package dot

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// SceneEventType identifies a scene lifecycle transition.
type SceneEventType uint8

const (
	SceneLoaded    SceneEventType = iota // a scene started on a fresh root
	SceneUnloaded                        // an active scene's tree was destroyed
	SceneChanged                         // the current scene switched to another
	SceneDestroyed                       // a scene was removed from its manager
)

func (t SceneEventType) String() string {
	switch t {
	case SceneLoaded:
		return "loaded"
	case SceneUnloaded:
		return "unloaded"
	case SceneChanged:
		return "changed"
	case SceneDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// SceneEvent carries a lifecycle transition to an EventSink.
type SceneEvent struct {
	Type     SceneEventType
	Scene    string
	LoadID   uuid.UUID
	Previous string // SceneChanged only
}

// EventSink receives scene lifecycle events. When set on a SceneManager,
// every transition is forwarded to it (see the ecs package for a donburi
// bridge).
type EventSink interface {
	EmitSceneEvent(event SceneEvent)
}

// SceneManager maps scene names to scenes and tracks the current one.
//
// Scenes registered by name are expected to live for the whole run: switching
// to one by name reloads it but never destroys the scene it replaces.
// ChangeScene is the stronger transition and destroys the outgoing scene.
type SceneManager struct {
	scenes  map[string]*Scene
	current *Scene
	sink    EventSink
	logger  *log.Logger
}

// NewSceneManager creates an empty manager. A nil logger discards output.
func NewSceneManager(logger *log.Logger) *SceneManager {
	return &SceneManager{
		scenes: make(map[string]*Scene),
		logger: loggerOr(logger),
	}
}

// SetEventSink attaches a receiver for scene lifecycle events. Nil detaches.
func (m *SceneManager) SetEventSink(sink EventSink) {
	m.sink = sink
}

func (m *SceneManager) emit(ev SceneEvent) {
	if m.sink != nil {
		m.sink.EmitSceneEvent(ev)
	}
}

// NewScene creates a scene with an empty root and registers it under name.
// The scene is not started until it is changed to.
func (m *SceneManager) NewScene(name string, onStart func(s *Scene)) *Scene {
	s := NewScene(name, onStart)
	m.Register(s)
	return s
}

// Register adds s to the registry, replacing any scene with the same name.
func (m *SceneManager) Register(s *Scene) {
	if s == nil {
		panic("dot: cannot register nil scene")
	}
	if s.state == SceneStateDestroyed {
		panic("dot: cannot register destroyed scene " + s.name)
	}
	if old, ok := m.scenes[s.name]; ok && old != s {
		m.logger.Warn("replacing registered scene", "name", s.name)
	}
	s.manager = m
	m.scenes[s.name] = s
}

// Scene returns the scene registered under name, or nil.
func (m *SceneManager) Scene(name string) *Scene {
	return m.scenes[name]
}

// Current returns the current scene, or nil.
func (m *SceneManager) Current() *Scene {
	return m.current
}

// CurrentName returns the name of the current scene, or "".
func (m *SceneManager) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.name
}

// Names returns the registered scene names in sorted order.
func (m *SceneManager) Names() []string {
	return slices.Sorted(maps.Keys(m.scenes))
}

// Len returns the number of registered scenes.
func (m *SceneManager) Len() int {
	return len(m.scenes)
}

// ChangeSceneByName makes the named scene current and reloads it. If it is
// already current it is reloaded in place. The previously current scene is
// not unloaded. An unregistered name is logged and returns ErrSceneNotFound
// without changing anything.
func (m *SceneManager) ChangeSceneByName(name string) error {
	s, ok := m.scenes[name]
	if !ok {
		m.logger.Warn("scene not found", "name", name)
		return fmt.Errorf("change scene: %w: %q", ErrSceneNotFound, name)
	}
	if s == m.current {
		s.Reload()
		return nil
	}
	prev := m.CurrentName()
	m.current = s
	s.Reload()
	m.emit(SceneEvent{Type: SceneChanged, Scene: name, LoadID: s.loadID, Previous: prev})
	return nil
}

// ChangeScene unloads and destroys the current scene, then makes s current
// and starts it. Passing the current scene reloads it instead.
func (m *SceneManager) ChangeScene(s *Scene) {
	if s == nil {
		panic("dot: ChangeScene with nil scene")
	}
	if s.state == SceneStateDestroyed {
		panic("dot: ChangeScene with destroyed scene " + s.name)
	}
	if s == m.current {
		s.Reload()
		return
	}
	prev := m.CurrentName()
	if m.current != nil {
		m.destroyScene(m.current)
		m.current = nil
	}
	if m.scenes[s.name] != s {
		m.Register(s)
	}
	m.current = s
	if s.state == SceneStateUnstarted {
		s.start()
	} else {
		s.Reload()
	}
	m.emit(SceneEvent{Type: SceneChanged, Scene: s.name, LoadID: s.loadID, Previous: prev})
}

// UnloadScene unloads and destroys the current scene.
func (m *SceneManager) UnloadScene() {
	if m.current == nil {
		return
	}
	s := m.current
	m.current = nil
	m.destroyScene(s)
}

// UnloadAllScenes unloads the current scene's tree, clears the current scene
// and destroys every registered scene. The registry is empty afterwards.
func (m *SceneManager) UnloadAllScenes() {
	if m.current != nil {
		m.current.Unload()
		m.current = nil
	}
	for _, name := range m.Names() {
		m.destroyScene(m.scenes[name])
	}
	clear(m.scenes)
}

func (m *SceneManager) destroyScene(s *Scene) {
	s.Unload()
	if m.scenes[s.name] == s {
		delete(m.scenes, s.name)
	}
	s.state = SceneStateDestroyed
	s.manager = nil
	m.logger.Debug("scene destroyed", "name", s.name)
	m.emit(SceneEvent{Type: SceneDestroyed, Scene: s.name, LoadID: s.loadID})
}

// ProcessInput forwards to the current scene.
func (m *SceneManager) ProcessInput() {
	if m.current != nil {
		m.current.ProcessInput()
	}
}

// Update forwards to the current scene.
func (m *SceneManager) Update(dt float64) {
	if m.current != nil {
		m.current.Update(dt)
	}
}

// Draw forwards to the current scene.
func (m *SceneManager) Draw(r Renderer) {
	if m.current != nil {
		m.current.Draw(r)
	}
}

// WriteAvailableScenes lists the registered scenes, one per line, marking the
// current one.
func (m *SceneManager) WriteAvailableScenes(w io.Writer) error {
	cur := m.CurrentName()
	for _, name := range m.Names() {
		line := "- " + name
		if m.current != nil && name == cur {
			line += " (active)"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
