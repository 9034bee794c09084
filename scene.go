package dot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// SceneState tracks where a scene is in its lifecycle.
type SceneState uint8

const (
	SceneStateUnstarted SceneState = iota // constructed, root allocated, Start not run
	SceneStateActive                      // Start has run on the current root
	SceneStateUnloaded                    // tree destroyed, no root
	SceneStateDestroyed                   // removed from its manager, cannot be used again
)

func (s SceneState) String() string {
	switch s {
	case SceneStateUnstarted:
		return "unstarted"
	case SceneStateActive:
		return "active"
	case SceneStateUnloaded:
		return "unloaded"
	case SceneStateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Scene owns one node tree and optionally designates a camera inside it.
// Scene-specific setup goes in OnStart, which populates the root each time
// the scene is started or reloaded.
type Scene struct {
	name    string
	root    *Node
	camera  NodeRef
	manager *SceneManager
	state   SceneState
	loadID  uuid.UUID

	OnStart        func(s *Scene)
	OnUpdate       func(s *Scene, dt float64)
	OnProcessInput func(s *Scene)
	OnUnload       func(s *Scene)

	UserData any
}

// NewScene creates an unregistered scene with an empty root. Use
// SceneManager.NewScene or SceneManager.Register to make it reachable by name.
func NewScene(name string, onStart func(s *Scene)) *Scene {
	return &Scene{
		name:    name,
		root:    NewNode("root"),
		OnStart: onStart,
	}
}

// Name returns the scene's registry key.
func (s *Scene) Name() string { return s.name }

// Root returns the scene's root node, or nil while unloaded.
func (s *Scene) Root() *Node { return s.root }

// State returns the lifecycle state.
func (s *Scene) State() SceneState { return s.state }

// LoadID identifies the current load of the scene. A new id is assigned each
// time the scene starts.
func (s *Scene) LoadID() uuid.UUID { return s.loadID }

// Manager returns the manager the scene is registered with, or nil.
func (s *Scene) Manager() *SceneManager { return s.manager }

// SetCamera designates the camera used to draw this scene. The camera must be
// attached to this scene's tree. Passing nil clears it, in which case the
// first camera in the tree is used.
func (s *Scene) SetCamera(cam *Node) {
	if cam != nil {
		if cam.Kind != KindCamera {
			panic("dot: SetCamera requires a camera node, got " + cam.Kind.String())
		}
		if s.root == nil || !isAncestor(s.root, cam) {
			panic(fmt.Sprintf("dot: camera %q is not in the tree of scene %q", cam.Name, s.name))
		}
	}
	s.camera = cam.Ref()
}

// Camera returns the designated camera, or nil if none is set or it has been
// destroyed.
func (s *Scene) Camera() *Node {
	return s.camera.Get()
}

func (s *Scene) logger() *log.Logger {
	if s.manager == nil {
		return nopLogger
	}
	return s.manager.logger
}

// start runs the scene's setup on its current root.
func (s *Scene) start() {
	if s.root == nil {
		s.root = NewNode("root")
	}
	s.state = SceneStateActive
	s.loadID = uuid.New()
	s.logger().Info("starting scene", "name", s.name, "load", s.loadID)
	if s.OnStart != nil {
		s.OnStart(s)
	}
	if s.manager != nil {
		s.manager.emit(SceneEvent{Type: SceneLoaded, Scene: s.name, LoadID: s.loadID})
	}
}

// Unload destroys the root and all descendants and clears the camera. Update,
// Draw and ProcessInput are no-ops until the scene is started again. Calling
// Unload on an already unloaded scene does nothing.
func (s *Scene) Unload() {
	if s.root == nil {
		return
	}
	wasActive := s.state == SceneStateActive
	root := s.root
	s.root = nil
	s.camera = NodeRef{}
	root.Destroy()
	if s.state != SceneStateDestroyed {
		s.state = SceneStateUnloaded
	}
	if wasActive {
		if s.OnUnload != nil {
			s.OnUnload(s)
		}
		if s.manager != nil {
			s.manager.emit(SceneEvent{Type: SceneUnloaded, Scene: s.name, LoadID: s.loadID})
		}
	}
}

// Reload unloads the scene, allocates a fresh root and runs OnStart again.
// The Scene value itself is preserved.
func (s *Scene) Reload() {
	if s.state == SceneStateDestroyed {
		panic("dot: Reload on destroyed scene " + s.name)
	}
	s.logger().Info("reloading scene", "name", s.name)
	s.Unload()
	s.root = NewNode("root")
	s.start()
}

// ProcessInput runs the scene's input hook.
func (s *Scene) ProcessInput() {
	if s.root == nil {
		return
	}
	if s.OnProcessInput != nil {
		s.OnProcessInput(s)
	}
}

// Update runs the scene's update hook and then updates the tree.
func (s *Scene) Update(dt float64) {
	if s.root == nil {
		return
	}
	if s.OnUpdate != nil {
		s.OnUpdate(s, dt)
	}
	// The hook may have unloaded or reloaded the scene.
	if s.root == nil {
		return
	}
	s.root.Update(dt)
}

// Draw draws the tree, wrapped in the camera's view when the scene has one.
func (s *Scene) Draw(r Renderer) {
	if s.root == nil {
		return
	}
	cam := s.camera.Get()
	if cam == nil {
		cam = findFirstCamera(s.root)
		s.camera = cam.Ref()
	}
	if cam == nil {
		s.root.Draw(r)
		return
	}
	r.BeginCamera(cam.Camera)
	s.root.Draw(r)
	r.EndCamera()
}

func findFirstCamera(n *Node) *Node {
	if n.Kind == KindCamera {
		return n
	}
	for _, child := range n.children {
		if found := findFirstCamera(child); found != nil {
			return found
		}
	}
	return nil
}
