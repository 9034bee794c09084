package dot

import "github.com/go-gl/mathgl/mgl32"

// Camera3D is the view description a camera node refreshes every update and
// hands to the renderer.
type Camera3D struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	// Fovy is the vertical field of view in degrees for perspective cameras,
	// or the visible height in world units for orthographic ones.
	Fovy       float32
	Projection Projection
}

// forward is the local look direction before rotation.
var forward = mgl32.Vec3{0, 0, 1}

// ViewMatrix returns the world-to-view transform.
func (c Camera3D) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the view-to-clip transform for the given aspect
// ratio (width / height).
func (c Camera3D) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if c.Projection == ProjectionOrthographic {
		h := c.Fovy / 2
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, 0.01, 1000)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, 0.01, 1000)
}

// SetTarget makes the camera look at node. The camera holds only a weak
// reference; nil clears the target.
func (n *Node) SetTarget(node *Node) {
	n.target = node.Ref()
}

// Target returns the node the camera looks at, or nil if none is set or it
// has been destroyed.
func (n *Node) Target() *Node {
	return n.target.Get()
}

func (n *Node) startCamera() {
	n.Camera.Fovy = 45
	n.Camera.Projection = ProjectionPerspective
	n.Camera.Up = mgl32.Vec3{0, 1, 0}
}

// updateCamera copies the node position into the camera and aims it at the
// target, or along the node's rotated forward axis when there is none.
func (n *Node) updateCamera() {
	n.Camera.Position = n.Position
	if t := n.target.Get(); t != nil && t.IsSpatial() {
		n.Camera.Target = t.Position
		return
	}
	n.Camera.Target = n.Position.Add(mgl32.TransformNormal(forward, rotationXYZ(n.Rotation)))
}
