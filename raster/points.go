package raster

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/depth"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
)

const (
	DefaultPointSize = 40.0
	DefaultZMin      = -5.0
	DefaultZMax      = 5.0

	orthoPointSizeDivisor = 20.0
)

// PointStyle colors points by their model space z from blue at ZMin to
// red at ZMax.
type PointStyle struct {
	ZMin, ZMax float32
	// SizeBase is the point size in pixels at one unit from the camera.
	SizeBase float32
}

func DefaultPointStyle() PointStyle {
	return PointStyle{
		ZMin:     DefaultZMin,
		ZMax:     DefaultZMax,
		SizeBase: DefaultPointSize,
	}
}

type pointSprite struct {
	x, y  float32 // window position, y down
	half  float32
	depth float32
	color overlay.Color
}

// span returns the pixels whose centers lie in [c-half, c+half).
func span(c, half float32) (int, int) {
	return int(math32.Ceil(c - half - 0.5)), int(math32.Ceil(c+half-0.5)) - 1
}

func (p *pointSprite) rows(int) (int, int) {
	return span(p.y, p.half)
}

func (p *pointSprite) drawRow(t *Target, y int, st State) {
	x0, x1 := span(p.x, p.half)
	if x0 < 0 {
		x0 = 0
	}
	if x1 > t.Width-1 {
		x1 = t.Width - 1
	}
	f := overlay.Fragment{Color: p.color, Depth: p.depth, WritesDepth: true}
	for x := x0; x <= x1; x++ {
		t.write(x, y, f, st)
	}
}

// DrawPoints draws square points given in model coordinates.
// Points whose center is clipped are dropped.
func (t *Target) DrawPoints(ctx context.Context, points []mat.Vec3, model mat.Mat4, tr camera.Transform, r depth.Range, ps PointStyle, st State) error {
	modelView := mat.Mul(tr.View, model)
	perspective := tr.Projection[15] == 0
	zRange := ps.ZMax - ps.ZMin

	prims := make([]primitive, 0, len(points))
	for _, p := range points {
		view := mat.MulVec4(modelView, mat.Point(p))
		clip := mat.MulVec4(tr.Projection, view)
		if clip[3] <= 0 {
			continue
		}
		ndc := clip.Divide()
		if !insideClip(ndc) {
			continue
		}
		size := ps.SizeBase / orthoPointSizeDivisor
		if perspective {
			size = mat.Clamp(ps.SizeBase/view.Vec3().Norm(), 1, ps.SizeBase)
		}
		c := (p[2] - ps.ZMin) / zRange
		prims = append(prims, &pointSprite{
			x:     (ndc[0] + 1) / 2 * float32(t.Width),
			y:     (1 - ndc[1]) / 2 * float32(t.Height),
			half:  size / 2,
			depth: r.Window(ndc[2]),
			color: overlay.Color{c, 0, 1 - c, 1},
		})
	}
	return t.drawPrimitives(ctx, prims, st)
}

func insideClip(ndc mat.Vec3) bool {
	for _, v := range ndc {
		if v < -1 || 1 < v {
			return false
		}
	}
	return true
}
