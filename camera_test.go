package dot

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraStartDefaults(t *testing.T) {
	root := NewNode("root")
	cam := NewCamera("cam")
	if cam.Camera.Fovy != 0 {
		t.Error("projection defaults should not be applied before attach")
	}
	root.AddChild(cam)
	if cam.Camera.Fovy != 45 {
		t.Errorf("Fovy = %v, want 45", cam.Camera.Fovy)
	}
	if cam.Camera.Projection != ProjectionPerspective {
		t.Errorf("Projection = %v, want perspective", cam.Camera.Projection)
	}
	if cam.Camera.Up != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up = %v, want (0,1,0)", cam.Camera.Up)
	}
}

func TestCameraStartRunsOnce(t *testing.T) {
	root := NewNode("root")
	cam := NewCamera("cam")
	root.AddChild(cam)
	cam.Camera.Fovy = 60
	cam.start()
	if cam.Camera.Fovy != 60 {
		t.Error("camera start should only run once")
	}
}

func TestCameraTracksTarget(t *testing.T) {
	root := NewNode("root")
	cam := NewCamera("cam")
	cam.SetPosition(0, 4, -10)
	cube := NewSpatial("cube")
	cube.SetPosition(0, 1, 0)
	root.AddChild(cam)
	root.AddChild(cube)
	cam.SetTarget(cube)

	root.Update(1.0 / 60)

	if cam.Camera.Position != Vec3(0, 4, -10) {
		t.Errorf("Position = %v", cam.Camera.Position)
	}
	if cam.Camera.Target != Vec3(0, 1, 0) {
		t.Errorf("Target = %v, want (0,1,0)", cam.Camera.Target)
	}
	if cam.Target() != cube {
		t.Error("Target() should resolve to cube")
	}

	cube.Position = Vec3(3, 1, 0)
	root.Update(1.0 / 60)
	if cam.Camera.Target != Vec3(3, 1, 0) {
		t.Errorf("Target = %v, want (3,1,0)", cam.Camera.Target)
	}
}

func TestCameraForwardWithoutTarget(t *testing.T) {
	root := NewNode("root")
	cam := NewCamera("cam")
	cam.SetPosition(1, 2, 3)
	cam.SetRotation(0, math.Pi/2, 0)
	root.AddChild(cam)

	root.Update(1.0 / 60)

	// Forward (0,0,1) rotated 90 about Y is (1,0,0).
	if got := cam.Camera.Target; !vecNear(got, mgl32.Vec3{2, 2, 3}) {
		t.Errorf("Target = %v, want (2,2,3)", got)
	}
}

func TestCameraStaleTargetFallsBackToForward(t *testing.T) {
	root := NewNode("root")
	cam := NewCamera("cam")
	cube := NewSpatial("cube")
	cube.SetPosition(5, 5, 5)
	root.AddChild(cam)
	root.AddChild(cube)
	cam.SetTarget(cube)
	root.Update(0.1)

	root.RemoveChild(cube)
	root.Update(0.1)

	if cam.Target() != nil {
		t.Error("Target() should be nil once the target is destroyed")
	}
	if got := cam.Camera.Target; !vecNear(got, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Target = %v, want forward (0,0,1)", got)
	}
}

func TestCameraNonSpatialTargetFallsBack(t *testing.T) {
	root := NewNode("root")
	cam := NewCamera("cam")
	plain := NewNode("plain")
	root.AddChild(cam)
	root.AddChild(plain)
	cam.SetTarget(plain)
	root.Update(0.1)
	if got := cam.Camera.Target; !vecNear(got, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Target = %v, want forward (0,0,1)", got)
	}
}

func TestCameraSetTargetNilClears(t *testing.T) {
	cam := NewCamera("cam")
	cube := NewSpatial("cube")
	cam.SetTarget(cube)
	cam.SetTarget(nil)
	if cam.Target() != nil {
		t.Error("SetTarget(nil) should clear the target")
	}
}

func TestCameraMatrices(t *testing.T) {
	c := Camera3D{
		Position: mgl32.Vec3{0, 0, -10},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     45,
	}
	// The target lies straight ahead on the view axis.
	got := mgl32.TransformCoordinate(c.Target, c.ViewMatrix())
	if !vecNear(got, mgl32.Vec3{0, 0, -10}) {
		t.Errorf("target in view space = %v, want (0,0,-10)", got)
	}

	persp := c.ProjectionMatrix(16.0 / 9)
	if !persp.ApproxEqual(mgl32.Perspective(mgl32.DegToRad(45), 16.0/9, 0.01, 1000)) {
		t.Error("perspective matrix mismatch")
	}
	c.Projection = ProjectionOrthographic
	c.Fovy = 10
	ortho := c.ProjectionMatrix(2)
	if !ortho.ApproxEqual(mgl32.Ortho(-10, 10, -5, 5, 0.01, 1000)) {
		t.Error("orthographic matrix mismatch")
	}
}
