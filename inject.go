package dot

import "github.com/hajimehoshi/ebiten/v2"

// syntheticKeyEvent represents a single injected key transition.
type syntheticKeyEvent struct {
	key     ebiten.Key
	pressed bool
}

// InjectKeyDown queues a key press. The key stays held until a matching
// InjectKeyUp is consumed. Events are consumed one per Update.
func (in *Input) InjectKeyDown(key ebiten.Key) {
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: key, pressed: true})
}

// InjectKeyUp queues a key release.
func (in *Input) InjectKeyUp(key ebiten.Key) {
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: key, pressed: false})
}

// InjectKeyTap queues a press followed by a release. Consumes two frames.
func (in *Input) InjectKeyTap(key ebiten.Key) {
	in.InjectKeyDown(key)
	in.InjectKeyUp(key)
}

// InjectAction taps the key bound to action. Returns false if the action is
// unbound.
func (in *Input) InjectAction(action string) bool {
	k, ok := in.bindings[action]
	if !ok {
		return false
	}
	in.InjectKeyTap(k)
	return true
}

// PendingInjections returns the number of queued synthetic events.
func (in *Input) PendingInjections() int {
	return len(in.injectQueue)
}

// processInjectedInput pops one event from the inject queue and applies it to
// the held synthetic key set. Returns true if an event was consumed.
func (in *Input) processInjectedInput() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.pressed {
		in.injected[evt.key] = true
	} else {
		delete(in.injected, evt.key)
	}
	return true
}
