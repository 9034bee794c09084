package dot

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common colors used by the example scenes and the debug renderer.
var (
	ColorWhite     = Color{1, 1, 1, 1}
	ColorBlue      = Color{0, 0.47, 0.95, 1}
	ColorRed       = Color{0.9, 0.16, 0.22, 1}
	ColorRayWhite  = Color{0.96, 0.96, 0.96, 1}
	ColorLightGray = Color{0.78, 0.78, 0.78, 1}
)

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec3 builds an mgl32.Vec3 from float64 components.
func Vec3(x, y, z float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// Kind distinguishes the behavior a Node carries on top of the plain tree.
type Kind uint8

const (
	KindNode    Kind = iota // plain tree node, no transform
	KindSpatial             // node with position, rotation and scale
	KindCamera              // spatial node that drives a Camera3D
)

// String returns the kind name used by tree dumps.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "Node"
	case KindSpatial:
		return "SpatialNode"
	case KindCamera:
		return "CameraNode"
	default:
		return "Unknown"
	}
}

// Projection selects how a camera maps view space to clip space.
type Projection uint8

const (
	ProjectionPerspective  Projection = iota // fovy is the vertical field of view in degrees
	ProjectionOrthographic                   // fovy is the visible height in world units
)
