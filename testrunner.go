package dot

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Name   string `json:"name,omitempty"`
	Frames int    `json:"frames,omitempty"`

	key ebiten.Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected key events and scene changes across frames
// for automated testing. Attach to an Engine via SetTestRunner.
//
// Supported actions:
//
//	{"action": "press",   "key": "Space"}   hold a key
//	{"action": "release", "key": "Space"}   release a held key
//	{"action": "tap",     "key": "Space"}   press then release (two frames)
//	{"action": "trigger", "name": "Jump"}   tap the key bound to an action
//	{"action": "wait",    "frames": 3}
//	{"action": "scene",   "name": "Next"}   ChangeSceneByName
//	{"action": "screenshot", "name": "after-switch"}
//	{"action": "quit"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	errs      []error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner. Key names are resolved here
// so a bad script fails before it runs.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			k, err := parseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			st.key = k
		case "trigger", "wait", "scene", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the engine. The runner's step method
// is called at the start of every Engine.Update.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Errors returns the failures of steps that could not be applied, such as a
// scene change to an unknown name.
func (r *TestRunner) Errors() []error {
	return r.errs
}

// step advances the test runner by one frame. Called from Engine.Update.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.Input.PendingInjections() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		e.Input.InjectKeyDown(st.key)
	case "release":
		e.Input.InjectKeyUp(st.key)
	case "tap":
		e.Input.InjectKeyTap(st.key)
	case "trigger":
		if !e.Input.InjectAction(st.Name) {
			r.errs = append(r.errs, fmt.Errorf("trigger %q: action not bound", st.Name))
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "scene":
		if err := e.Scenes.ChangeSceneByName(st.Name); err != nil {
			r.errs = append(r.errs, err)
		}
	case "screenshot":
		e.Screenshot(st.Name)
	case "quit":
		e.Quit()
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && e.Input.PendingInjections() == 0 {
		r.done = true
	}
}
