package dot

import (
	"image"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer is the drawing surface handed to OnDraw and OnPostDraw hooks.
// Shapes are drawn around the origin of the current model transform.
type Renderer interface {
	// PushTransform makes m the model-to-world transform for subsequent
	// shapes until the matching PopTransform.
	PushTransform(m mgl32.Mat4)
	PopTransform()
	// BeginCamera switches to the camera's view and projection.
	BeginCamera(cam Camera3D)
	EndCamera()
	DrawCube(center, size mgl32.Vec3, c Color)
	DrawCubeWires(center, size mgl32.Vec3, c Color)
	// DrawText prints msg in screen space.
	DrawText(msg string, x, y int)
}

// CubeHook returns an OnDraw hook that draws a filled cube with wire edges
// in the node's world space. A zero wire color skips the edges.
func CubeHook(center, size mgl32.Vec3, fill, wire Color) func(*Node, Renderer) {
	return func(n *Node, r Renderer) {
		r.PushTransform(n.WorldTransform())
		r.DrawCube(center, size, fill)
		if wire != (Color{}) {
			r.DrawCubeWires(center, size, wire)
		}
		r.PopTransform()
	}
}

// pixelsPerUnit is the scale of the fallback orthographic view used when no
// camera is active.
const pixelsPerUnit = 32

// ScreenRenderer draws onto an ebiten screen image.
type ScreenRenderer struct {
	screen   *ebiten.Image
	width    int
	height   int
	viewProj mgl32.Mat4
	model    mgl32.Mat4
	stack    []mgl32.Mat4

	LineWidth float32
}

// NewScreenRenderer creates a renderer. Call Begin with the frame's screen
// before drawing.
func NewScreenRenderer() *ScreenRenderer {
	return &ScreenRenderer{model: mgl32.Ident4(), LineWidth: 1}
}

// Begin targets screen for the current frame and resets all state.
func (r *ScreenRenderer) Begin(screen *ebiten.Image) {
	b := screen.Bounds()
	r.screen = screen
	r.width, r.height = b.Dx(), b.Dy()
	r.model = mgl32.Ident4()
	r.stack = r.stack[:0]
	r.viewProj = r.defaultViewProj()
}

func (r *ScreenRenderer) defaultViewProj() mgl32.Mat4 {
	hw := float32(r.width) / (2 * pixelsPerUnit)
	hh := float32(r.height) / (2 * pixelsPerUnit)
	return mgl32.Ortho(-hw, hw, -hh, hh, -1000, 1000)
}

func (r *ScreenRenderer) aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *ScreenRenderer) PushTransform(m mgl32.Mat4) {
	r.stack = append(r.stack, r.model)
	r.model = m
}

func (r *ScreenRenderer) PopTransform() {
	if len(r.stack) == 0 {
		r.model = mgl32.Ident4()
		return
	}
	r.model = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *ScreenRenderer) BeginCamera(cam Camera3D) {
	r.viewProj = cam.ProjectionMatrix(r.aspect()).Mul4(cam.ViewMatrix())
}

func (r *ScreenRenderer) EndCamera() {
	r.viewProj = r.defaultViewProj()
}

func (r *ScreenRenderer) DrawText(msg string, x, y int) {
	if r.screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(r.screen, msg, x, y)
}

// cubeCorners are the unit cube corners, indexed by bit pattern (x, y, z).
var cubeCorners = [8]mgl32.Vec3{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5},
}

var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var cubeFaces = [6][4]int{
	{0, 1, 3, 2}, {4, 5, 7, 6},
	{0, 1, 5, 4}, {2, 3, 7, 6},
	{0, 2, 6, 4}, {1, 3, 7, 5},
}

// faceShade darkens faces so adjacent sides stay distinguishable without lighting.
var faceShade = [6]float32{0.8, 0.8, 0.6, 1, 0.7, 0.7}

// projectCube projects the cube corners to screen space. ok is false if any
// corner lies behind the camera.
func (r *ScreenRenderer) projectCube(center, size mgl32.Vec3) (pts [8]mgl32.Vec3, ok bool) {
	mvp := r.viewProj.Mul4(r.model)
	for i, c := range cubeCorners {
		p := center.Add(mgl32.Vec3{c.X() * size.X(), c.Y() * size.Y(), c.Z() * size.Z()})
		pts[i], ok = projectPoint(mvp, p, float32(r.width), float32(r.height))
		if !ok {
			return pts, false
		}
	}
	return pts, true
}

func (r *ScreenRenderer) DrawCube(center, size mgl32.Vec3, c Color) {
	if r.screen == nil {
		return
	}
	pts, ok := r.projectCube(center, size)
	if !ok {
		return
	}
	// Painter's order: farthest faces first.
	order := []int{0, 1, 2, 3, 4, 5}
	depth := func(f int) float32 {
		var z float32
		for _, i := range cubeFaces[f] {
			z += pts[i].Z()
		}
		return z
	}
	sort.Slice(order, func(a, b int) bool { return depth(order[a]) > depth(order[b]) })

	verts := make([]ebiten.Vertex, 0, 24)
	inds := make([]uint16, 0, 36)
	for _, f := range order {
		base := uint16(len(verts))
		shade := faceShade[f]
		for _, i := range cubeFaces[f] {
			verts = append(verts, ebiten.Vertex{
				DstX: pts[i].X(), DstY: pts[i].Y(),
				SrcX: 1, SrcY: 1,
				ColorR: float32(c.R) * shade,
				ColorG: float32(c.G) * shade,
				ColorB: float32(c.B) * shade,
				ColorA: float32(c.A),
			})
		}
		inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	}
	r.screen.DrawTriangles(verts, inds, whiteSubImage(), &ebiten.DrawTrianglesOptions{})
}

func (r *ScreenRenderer) DrawCubeWires(center, size mgl32.Vec3, c Color) {
	if r.screen == nil {
		return
	}
	pts, ok := r.projectCube(center, size)
	if !ok {
		return
	}
	clr := c.toRGBA()
	for _, e := range cubeEdges {
		a, b := pts[e[0]], pts[e[1]]
		vector.StrokeLine(r.screen, a.X(), a.Y(), b.X(), b.Y(), r.LineWidth, clr, true)
	}
}

// projectPoint maps p through mvp to screen pixels. The returned Z is the
// normalized device depth. ok is false for points behind the eye.
func projectPoint(mvp mgl32.Mat4, p mgl32.Vec3, width, height float32) (mgl32.Vec3, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl32.Vec3{}, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	return mgl32.Vec3{
		(ndc.X() + 1) / 2 * width,
		(1 - ndc.Y()) / 2 * height,
		ndc.Z(),
	}, true
}

var whiteImage *ebiten.Image

// whiteSubImage returns the 1x1 interior of a 3x3 white image, used as the
// source for flat-colored triangles.
func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.toRGBA())
		whiteImage = img
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}
