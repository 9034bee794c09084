package dot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingRenderer captures renderer calls as strings.
type recordingRenderer struct {
	calls []string
	depth int
}

func (r *recordingRenderer) PushTransform(m mgl32.Mat4) {
	r.depth++
	r.calls = append(r.calls, fmt.Sprintf("push %v", m.Col(3).Vec3()))
}

func (r *recordingRenderer) PopTransform() {
	r.depth--
	r.calls = append(r.calls, "pop")
}

func (r *recordingRenderer) BeginCamera(cam Camera3D) {
	r.calls = append(r.calls, fmt.Sprintf("begin %v", cam.Position))
}

func (r *recordingRenderer) EndCamera() { r.calls = append(r.calls, "end") }

func (r *recordingRenderer) DrawCube(center, size mgl32.Vec3, c Color) {
	r.calls = append(r.calls, fmt.Sprintf("cube %v %v", center, size))
}

func (r *recordingRenderer) DrawCubeWires(center, size mgl32.Vec3, c Color) {
	r.calls = append(r.calls, fmt.Sprintf("wires %v %v", center, size))
}

func (r *recordingRenderer) DrawText(msg string, x, y int) {
	r.calls = append(r.calls, "text "+msg)
}

func TestCubeHook(t *testing.T) {
	n := NewSpatial("cube")
	n.SetPosition(1, 2, 3)
	n.OnDraw = CubeHook(Vec3(2, 1, 1), Vec3(1, 1, 1), ColorRed, ColorRayWhite)

	r := &recordingRenderer{}
	n.Draw(r)

	want := []string{
		"push [1 2 3]",
		"cube [2 1 1] [1 1 1]",
		"wires [2 1 1] [1 1 1]",
		"pop",
	}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, r.calls[i], want[i])
		}
	}
	if r.depth != 0 {
		t.Errorf("unbalanced transform stack: depth %d", r.depth)
	}
}

func TestCubeHookNoWires(t *testing.T) {
	n := NewSpatial("cube")
	n.OnDraw = CubeHook(mgl32.Vec3{}, Vec3(2, 2, 2), ColorBlue, Color{})
	r := &recordingRenderer{}
	n.Draw(r)
	for _, c := range r.calls {
		if strings.HasPrefix(c, "wires") {
			t.Error("zero wire color should skip the edges")
		}
	}
}

func TestProjectPointCenter(t *testing.T) {
	cam := Camera3D{
		Position: mgl32.Vec3{0, 0, -10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     45,
	}
	mvp := cam.ProjectionMatrix(2).Mul4(cam.ViewMatrix())

	got, ok := projectPoint(mvp, mgl32.Vec3{}, 200, 100)
	if !ok {
		t.Fatal("point in front of the camera should project")
	}
	if !vecNear(mgl32.Vec3{got.X(), got.Y(), 0}, mgl32.Vec3{100, 50, 0}) {
		t.Errorf("projected = %v, want screen center (100, 50)", got)
	}
}

func TestProjectPointUpIsUpOnScreen(t *testing.T) {
	cam := Camera3D{
		Position: mgl32.Vec3{0, 0, -10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     45,
	}
	mvp := cam.ProjectionMatrix(1).Mul4(cam.ViewMatrix())
	center, _ := projectPoint(mvp, mgl32.Vec3{}, 100, 100)
	up, _ := projectPoint(mvp, mgl32.Vec3{0, 1, 0}, 100, 100)
	if up.Y() >= center.Y() {
		t.Errorf("world +Y should map to smaller screen y: up %v, center %v", up, center)
	}
}

func TestProjectPointBehindCamera(t *testing.T) {
	cam := Camera3D{
		Position: mgl32.Vec3{0, 0, -10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     45,
	}
	mvp := cam.ProjectionMatrix(1).Mul4(cam.ViewMatrix())
	if _, ok := projectPoint(mvp, mgl32.Vec3{0, 0, -20}, 100, 100); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestScreenRendererTransformStack(t *testing.T) {
	r := NewScreenRenderer()
	a := mgl32.Translate3D(1, 0, 0)
	b := mgl32.Translate3D(0, 2, 0)
	r.PushTransform(a)
	r.PushTransform(b)
	if r.model != b {
		t.Error("model should be the last pushed transform")
	}
	r.PopTransform()
	if r.model != a {
		t.Error("pop should restore the previous transform")
	}
	r.PopTransform()
	r.PopTransform() // extra pop resets to identity
	if r.model != mgl32.Ident4() {
		t.Error("model should be identity after unbalanced pop")
	}
}

func TestScreenRendererWithoutScreenIsNoop(t *testing.T) {
	r := NewScreenRenderer()
	r.DrawCube(mgl32.Vec3{}, Vec3(1, 1, 1), ColorBlue)
	r.DrawCubeWires(mgl32.Vec3{}, Vec3(1, 1, 1), ColorBlue)
	r.DrawText("hi", 0, 0)
}

func TestFPSWidgetDrawsText(t *testing.T) {
	w := NewFPSWidget()
	r := &recordingRenderer{}
	w.Draw(r)
	if len(r.calls) != 1 || !strings.HasPrefix(r.calls[0], "text") {
		t.Errorf("calls = %v, want one text call", r.calls)
	}
}
