package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// nodeIDCounter is a plain counter (dot is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node kinds; Kind selects the built-in behavior and behavior beyond that
// is attached through the On* hooks.
//
// A node owns its children. The parent pointer is a back-reference used for
// upward queries only.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Kind Kind

	// Hierarchy
	parent   *Node
	children []*Node

	// Transform (KindSpatial, KindCamera). Rotation is in radians and is
	// applied about X, then Y, then Z.
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	// Camera state (KindCamera), refreshed every Update.
	Camera Camera3D
	target NodeRef

	// Metadata
	UserData any

	// Per-node hooks (nil by default; zero cost when unused).
	OnStart        func(n *Node)
	OnUpdate       func(n *Node, dt float64)
	OnProcessInput func(n *Node)
	OnDraw         func(n *Node, r Renderer)
	OnPostDraw     func(n *Node, r Renderer)
	OnDestroy      func(n *Node)

	// Internal
	started  bool
	disposed bool
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		ID:    nextNodeID(),
		Name:  name,
		Kind:  kind,
		Scale: mgl32.Vec3{1, 1, 1},
	}
}

// NewNode creates a plain node with no transform.
func NewNode(name string) *Node {
	return newNode(name, KindNode)
}

// NewSpatial creates a node with a position, rotation and scale.
func NewSpatial(name string) *Node {
	return newNode(name, KindSpatial)
}

// NewCamera creates a camera node. Its projection defaults are applied when it
// is attached to a parent.
func NewCamera(name string) *Node {
	return newNode(name, KindCamera)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children and starts it.
// Panics if child is nil, already has a parent or is an ancestor of this node
// (cycle). In debug mode a disposed parent or child also panics.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("dot: cannot add nil child")
	}
	if globalDebug != nil {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if child.parent != nil {
		panic(fmt.Sprintf("dot: node %q already has parent %q", child.Name, child.parent.Name))
	}
	if isAncestor(child, n) {
		panic("dot: adding child would create a cycle")
	}
	child.parent = n
	n.children = append(n.children, child)
	if globalDebug != nil {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	child.start()
}

// RemoveChild fires child's OnDestroy hook, detaches it and disposes its whole
// subtree. No-op if child is not a child of this node.
func (n *Node) RemoveChild(child *Node) {
	if child == nil {
		return
	}
	if globalDebug != nil {
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.parent != n || n.indexOf(child) < 0 {
		return
	}
	if hook := child.OnDestroy; hook != nil {
		// Cleared first so a hook that removes its own node does not fire again.
		child.OnDestroy = nil
		hook(child)
		// The hook may have removed the child already.
		if child.disposed || child.parent != n {
			return
		}
	}
	n.removeChildByPtr(child)
	child.parent = nil
	child.dispose()
}

// Destroy removes this node from its parent and disposes its subtree, firing
// OnDestroy. A detached node is disposed in place.
func (n *Node) Destroy() {
	if n.disposed {
		return
	}
	if n.parent != nil {
		n.parent.RemoveChild(n)
		return
	}
	if hook := n.OnDestroy; hook != nil {
		n.OnDestroy = nil
		hook(n)
		if n.disposed {
			return
		}
	}
	n.dispose()
}

// Parent returns the node this node is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Count returns the number of nodes in the subtree rooted at n, n included.
func (n *Node) Count() int {
	count := 1
	for _, child := range n.children {
		count += child.Count()
	}
	return count
}

// Find returns the first node named name in depth-first order, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// IsDisposed returns true if this node has been destroyed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// IsStarted reports whether the node's start hook has fired.
func (n *Node) IsStarted() bool {
	return n.started
}

// --- Frame hooks ---

// Update runs the node's own behavior and then updates every child in
// insertion order. Children attached during the pass first update on the
// next call; children removed during the pass are skipped.
func (n *Node) Update(dt float64) {
	if n.disposed {
		return
	}
	// Children attached by the hooks below are not in this snapshot.
	// removeChildByPtr never writes into the backing array being ranged over.
	children := n.children
	if n.OnUpdate != nil {
		n.OnUpdate(n, dt)
		if n.disposed {
			return
		}
	}
	if n.Kind == KindCamera {
		n.updateCamera()
	}
	if n.OnProcessInput != nil {
		n.OnProcessInput(n)
		if n.disposed {
			return
		}
	}
	for _, child := range children {
		if child.disposed {
			continue
		}
		child.Update(dt)
		if n.disposed {
			return
		}
	}
}

// Draw calls OnDraw, draws every child in insertion order, then calls
// OnPostDraw.
func (n *Node) Draw(r Renderer) {
	if n.disposed {
		return
	}
	if n.OnDraw != nil {
		n.OnDraw(n, r)
	}
	for _, child := range n.children {
		if child.disposed {
			continue
		}
		child.Draw(r)
	}
	if n.OnPostDraw != nil {
		n.OnPostDraw(n, r)
	}
}

// --- Debug dump ---

// WriteTree writes an indented view of the subtree rooted at n, one node per
// line, in child order.
func (n *Node) WriteTree(w io.Writer) error {
	var b strings.Builder
	n.writeTree(&b, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

// TreeString returns the output of WriteTree as a string.
func (n *Node) TreeString() string {
	var b strings.Builder
	n.writeTree(&b, 0)
	return b.String()
}

func (n *Node) writeTree(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		if i == depth-1 {
			b.WriteString(" +-- ")
		} else {
			b.WriteString(" |   ")
		}
	}
	fmt.Fprintf(b, "[%s] %s\n", n.Kind, n.Name)
	for _, child := range n.children {
		child.writeTree(b, depth+1)
	}
}

// --- Helpers ---

// start fires the node's one-time start behavior.
func (n *Node) start() {
	if n.started {
		return
	}
	n.started = true
	if n.Kind == KindCamera {
		n.startCamera()
	}
	if n.OnStart != nil {
		n.OnStart(n)
	}
}

// dispose marks n and all descendants as disposed, depth-first, and drops
// every reference they hold.
func (n *Node) dispose() {
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.parent = nil
	n.target = NodeRef{}
	n.UserData = nil
	n.OnStart = nil
	n.OnUpdate = nil
	n.OnProcessInput = nil
	n.OnDraw = nil
	n.OnPostDraw = nil
	n.OnDestroy = nil
}

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// The remaining children are copied into a fresh slice so that a traversal
// ranging over the old slice is not shifted underneath it.
func (n *Node) removeChildByPtr(child *Node) {
	i := n.indexOf(child)
	if i < 0 {
		return
	}
	kept := make([]*Node, 0, len(n.children)-1)
	kept = append(kept, n.children[:i]...)
	n.children = append(kept, n.children[i+1:]...)
}
