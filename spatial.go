package dot

import "github.com/go-gl/mathgl/mgl32"

// IsSpatial reports whether the node carries a transform.
func (n *Node) IsSpatial() bool {
	return n.Kind == KindSpatial || n.Kind == KindCamera
}

// SetPosition sets the node's local position.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = Vec3(x, y, z)
}

// SetRotation sets the node's local rotation in radians about X, Y and Z.
func (n *Node) SetRotation(x, y, z float64) {
	n.Rotation = Vec3(x, y, z)
}

// SetScale sets the node's local scale.
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = Vec3(x, y, z)
}

// rotationXYZ returns the rotation matrix applying X first, then Y, then Z.
func rotationXYZ(r mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(r.Z()).
		Mul4(mgl32.HomogRotate3DY(r.Y())).
		Mul4(mgl32.HomogRotate3DX(r.X()))
}

// LocalTransform returns T * R * S built from the node's own fields.
// Non-spatial nodes return the identity.
func (n *Node) LocalTransform() mgl32.Mat4 {
	if !n.IsSpatial() {
		return mgl32.Ident4()
	}
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(rotationXYZ(n.Rotation)).Mul4(s)
}

// WorldTransform composes the node's local transform with that of its nearest
// spatial ancestor. Plain nodes in between are transparent. Computed on demand.
func (n *Node) WorldTransform() mgl32.Mat4 {
	if !n.IsSpatial() {
		return mgl32.Ident4()
	}
	local := n.LocalTransform()
	if p := n.spatialParent(); p != nil {
		return p.WorldTransform().Mul4(local)
	}
	return local
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldTransform().Col(3).Vec3()
}

func (n *Node) spatialParent() *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.IsSpatial() {
			return p
		}
	}
	return nil
}
