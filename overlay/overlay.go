// Package overlay implements per-pixel programs drawing implicit surfaces
// (ground grid, sphere gizmo, environment background) over rasterized scenes.
//
// Every Shader is a pure function of the pixel and of the values captured
// when it was created for the draw call, so pixels can be shaded
// concurrently in any order.
package overlay

import (
	"github.com/seqsense/pcdoverlay/mat"
)

// Color is a straight (non-premultiplied) RGBA color.
type Color [4]float32

func (c Color) Add(a Color) Color {
	return Color{c[0] + a[0], c[1] + a[1], c[2] + a[2], c[3] + a[3]}
}

// ScaleRGB multiplies color channels by s, leaving alpha.
func (c Color) ScaleRGB(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s, c[3]}
}

// Clamp limits every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{mat.Clamp01(c[0]), mat.Clamp01(c[1]), mat.Clamp01(c[2]), mat.Clamp01(c[3])}
}

// Fragment is the output of one shader invocation.
// Depth is used only if WritesDepth is set.
type Fragment struct {
	Color       Color
	Depth       float32
	WritesDepth bool
}

// Pixel is the input of one shader invocation.
// Step is the NDC size of one pixel and is used to take screen space
// derivatives.
type Pixel struct {
	NDC  mat.Vec2
	Step mat.Vec2
}

// Shader returns false to discard the pixel.
type Shader interface {
	Shade(px Pixel) (Fragment, bool)
}

type ShaderFunc func(px Pixel) (Fragment, bool)

func (f ShaderFunc) Shade(px Pixel) (Fragment, bool) {
	return f(px)
}
