// Package raster is a software framebuffer running overlay shaders and
// simple primitives with fixed-function depth test and blending.
package raster

import (
	"image"
	"image/color"

	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
)

// Target is a color and depth buffer. Row 0 is the top of the image.
type Target struct {
	Width, Height int
	Color         []overlay.Color
	Depth         []float32
	// Reversed flips the depth test to pass greater or equal values,
	// for depth ranges with Near above Far.
	Reversed bool
}

func NewTarget(width, height int) *Target {
	n := width * height
	return &Target{
		Width:  width,
		Height: height,
		Color:  make([]overlay.Color, n),
		Depth:  make([]float32, n),
	}
}

func (t *Target) Clear(c overlay.Color, depth float32) {
	for i := range t.Color {
		t.Color[i] = c
		t.Depth[i] = depth
	}
}

func (t *Target) At(x, y int) overlay.Color {
	return t.Color[y*t.Width+x]
}

func (t *Target) DepthAt(x, y int) float32 {
	return t.Depth[y*t.Width+x]
}

// State is the fixed-function configuration of a draw call.
type State struct {
	// DepthTest passes fragments with depth less than or equal to the
	// stored value, or greater or equal on a reversed target.
	// Fragments without depth are never tested.
	DepthTest bool
	// DepthWrite stores the depth of passing fragments.
	DepthWrite bool
	// Blend composites straight alpha colors as
	// src*srcAlpha + dst*(1-srcAlpha). Otherwise colors are replaced.
	Blend bool
}

var (
	OpaqueState  = State{DepthTest: true, DepthWrite: true}
	OverlayState = State{DepthTest: true, DepthWrite: true, Blend: true}
	// BackgroundState draws without touching depth.
	BackgroundState = State{Blend: true}
)

func (t *Target) write(x, y int, f overlay.Fragment, st State) {
	i := y*t.Width + x
	if f.WritesDepth {
		if st.DepthTest && t.occluded(f.Depth, t.Depth[i]) {
			return
		}
		if st.DepthWrite {
			t.Depth[i] = f.Depth
		}
	}
	src := f.Color.Clamp()
	if !st.Blend {
		t.Color[i] = src
		return
	}
	a := src[3]
	dst := t.Color[i]
	t.Color[i] = overlay.Color{
		src[0]*a + dst[0]*(1-a),
		src[1]*a + dst[1]*(1-a),
		src[2]*a + dst[2]*(1-a),
		src[3]*a + dst[3]*(1-a),
	}
}

func (t *Target) occluded(d, stored float32) bool {
	if t.Reversed {
		return d < stored
	}
	return d > stored
}

// Image converts the color buffer to an 8 bit image.
func (t *Target) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := t.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3]),
			})
		}
	}
	return img
}

func to8(v float32) uint8 {
	return uint8(mat.Clamp01(v)*0xFF + 0.5)
}

// pixelStep is the NDC size of one pixel.
func (t *Target) pixelStep() mat.Vec2 {
	return mat.Vec2{2 / float32(t.Width), 2 / float32(t.Height)}
}
