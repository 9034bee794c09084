package dot

import (
	"maps"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeySource reports the physical state of keyboard keys.
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

// EbitenKeys polls the keyboard through ebiten. Only meaningful while a game
// is running.
var EbitenKeys KeySource = ebitenKeys{}

// --- Handler registry ---

type actionHandler struct {
	id     uint32
	action string
	fn     func(action string)
}

type handlerRegistry struct {
	pressed  []actionHandler
	released []actionHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered action callback.
type CallbackHandle struct {
	id       uint32
	reg      *handlerRegistry
	released bool
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.released {
		h.reg.released = removeActionHandler(h.reg.released, h.id)
	} else {
		h.reg.pressed = removeActionHandler(h.reg.pressed, h.id)
	}
}

func removeActionHandler(s []actionHandler, id uint32) []actionHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = actionHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Input maps named actions to keys and tracks key state across frames.
// Update must be called once per frame before any action is queried.
type Input struct {
	source   KeySource
	bindings map[string]ebiten.Key
	down     map[ebiten.Key]bool
	prev     map[ebiten.Key]bool

	injectQueue []syntheticKeyEvent
	injected    map[ebiten.Key]bool

	handlers handlerRegistry
}

// NewInput creates an Input reading from source. A nil source reports every
// key as released, leaving injected events as the only input.
func NewInput(source KeySource) *Input {
	return &Input{
		source:   source,
		bindings: make(map[string]ebiten.Key),
		down:     make(map[ebiten.Key]bool),
		prev:     make(map[ebiten.Key]bool),
		injected: make(map[ebiten.Key]bool),
	}
}

// SetSource replaces the key source.
func (in *Input) SetSource(source KeySource) {
	in.source = source
}

// HasSource reports whether a physical key source is attached.
func (in *Input) HasSource() bool {
	return in.source != nil
}

// BindAction maps action to key, replacing any previous binding.
func (in *Input) BindAction(action string, key ebiten.Key) {
	in.bindings[action] = key
}

// UnbindAction removes the binding for action.
func (in *Input) UnbindAction(action string) {
	delete(in.bindings, action)
}

// Binding returns the key bound to action.
func (in *Input) Binding(action string) (ebiten.Key, bool) {
	k, ok := in.bindings[action]
	return k, ok
}

// Bindings returns a copy of all action bindings.
func (in *Input) Bindings() map[string]ebiten.Key {
	return maps.Clone(in.bindings)
}

// IsActionPressed reports whether the action's key went down this frame.
// Unbound actions report false.
func (in *Input) IsActionPressed(action string) bool {
	k, ok := in.bindings[action]
	return ok && in.down[k] && !in.prev[k]
}

// IsActionDown reports whether the action's key is held.
func (in *Input) IsActionDown(action string) bool {
	k, ok := in.bindings[action]
	return ok && in.down[k]
}

// IsActionReleased reports whether the action's key went up this frame.
func (in *Input) IsActionReleased(action string) bool {
	k, ok := in.bindings[action]
	return ok && !in.down[k] && in.prev[k]
}

// IsKeyDown reports whether key was held at the last Update.
func (in *Input) IsKeyDown(key ebiten.Key) bool {
	return in.down[key]
}

// OnActionPressed registers a callback fired from Update when the action's
// key goes down.
func (in *Input) OnActionPressed(action string, fn func(action string)) CallbackHandle {
	in.handlers.nextID++
	id := in.handlers.nextID
	in.handlers.pressed = append(in.handlers.pressed, actionHandler{id: id, action: action, fn: fn})
	return CallbackHandle{id: id, reg: &in.handlers}
}

// OnActionReleased registers a callback fired from Update when the action's
// key goes up.
func (in *Input) OnActionReleased(action string, fn func(action string)) CallbackHandle {
	in.handlers.nextID++
	id := in.handlers.nextID
	in.handlers.released = append(in.handlers.released, actionHandler{id: id, action: action, fn: fn})
	return CallbackHandle{id: id, reg: &in.handlers, released: true}
}

// Update snapshots the previous frame, applies at most one injected event and
// polls every bound key. Action callbacks fire afterwards.
func (in *Input) Update() {
	in.prev, in.down = in.down, in.prev
	clear(in.down)

	in.processInjectedInput()

	for _, k := range in.bindings {
		if in.source != nil && in.source.IsKeyPressed(k) {
			in.down[k] = true
		}
	}
	for k, held := range in.injected {
		if held {
			in.down[k] = true
		}
	}

	in.fireHandlers()
}

func (in *Input) fireHandlers() {
	if len(in.handlers.pressed) == 0 && len(in.handlers.released) == 0 {
		return
	}
	// Snapshot so callbacks may register or remove handlers.
	pressed := append([]actionHandler(nil), in.handlers.pressed...)
	for _, h := range pressed {
		if in.IsActionPressed(h.action) {
			h.fn(h.action)
		}
	}
	released := append([]actionHandler(nil), in.handlers.released...)
	for _, h := range released {
		if in.IsActionReleased(h.action) {
			h.fn(h.action)
		}
	}
}
