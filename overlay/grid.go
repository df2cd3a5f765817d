package overlay

import (
	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/depth"
	"github.com/seqsense/pcdoverlay/intersect"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/raycast"
)

const (
	defaultGridAxisBand  = 0.1
	defaultGridFadeStart = 0.5
)

type GridParams struct {
	// LineColor is multiplied by line coverage in alpha.
	LineColor Color
	// Scales are the line densities per unit, summed.
	Scales []float32
	// AxisBand is the half width of the axis highlight in pixels,
	// capped to one world unit. Zero disables axis colors.
	AxisBand float32
	// FadeStart is the linear depth where the grid becomes transparent.
	FadeStart float32
	Reference depth.Reference
}

func DefaultGridParams() GridParams {
	return GridParams{
		LineColor: Color{0.2, 0.2, 0.2, 1},
		Scales:    []float32{10, 1},
		AxisBand:  defaultGridAxisBand,
		FadeStart: defaultGridFadeStart,
		Reference: depth.DefaultReference,
	}
}

// quadCorners is the full screen quad in NDC: bottom-left, bottom-right,
// top-left, top-right.
var quadCorners = [4]mat.Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// Grid draws an infinite ground grid on the y = 0 plane.
type Grid struct {
	params GridParams
	depth  depth.Reconciler

	near, far [4]mat.Vec3
}

// NewGrid unprojects the quad corners once. Per pixel near and far points
// are interpolated from them, which is exact since a perspective inverse
// keeps w constant over each clip plane.
func NewGrid(t camera.Transform, r depth.Range, p GridParams) *Grid {
	g := &Grid{
		params: p,
		depth:  depth.NewReconciler(t.ViewProj, r, p.Reference),
	}
	for i, c := range quadCorners {
		g.near[i], g.far[i] = raycast.NearFar(c, t.InvViewProj)
	}
	return g
}

func lerpCorners(c *[4]mat.Vec3, ndc mat.Vec2) mat.Vec3 {
	s := (ndc[0] + 1) / 2
	r := (ndc[1] + 1) / 2
	bottom := c[0].Mul(1 - s).Add(c[1].Mul(s))
	top := c[2].Mul(1 - s).Add(c[3].Mul(s))
	return bottom.Mul(1 - r).Add(top.Mul(r))
}

func (g *Grid) ground(ndc mat.Vec2) (float32, mat.Vec3) {
	return intersect.Ground(lerpCorners(&g.near, ndc), lerpCorners(&g.far, ndc))
}

func (g *Grid) Shade(px Pixel) (Fragment, bool) {
	t, p := g.ground(px.NDC)
	if !(t > 0) || t > 1 {
		// Behind the camera, parallel, or clipped by the far plane.
		return Fragment{}, false
	}

	// Neighbor intersections stand in for dFdx/dFdy.
	_, px1 := g.ground(mat.Vec2{px.NDC[0] + px.Step[0], px.NDC[1]})
	_, py1 := g.ground(mat.Vec2{px.NDC[0], px.NDC[1] + px.Step[1]})
	fw := mat.Vec2{
		fwidth(p[0], px1[0], py1[0]),
		fwidth(p[2], px1[2], py1[2]),
	}

	var c Color
	for _, s := range g.params.Scales {
		c = c.Add(g.line(p, fw.Mul(s), s))
	}
	c = c.Clamp()
	c[3] *= math32.Max(0, g.params.FadeStart-g.depth.Linear(p))

	return Fragment{
		Color:       c,
		Depth:       g.depth.Range.Clamp(g.depth.Depth(p)),
		WritesDepth: true,
	}, true
}

// line returns the anti-aliased line color at p for one scale.
// fw is the screen space derivative of the scaled coordinate.
func (g *Grid) line(p mat.Vec3, fw mat.Vec2, scale float32) Color {
	gx := math32.Abs(mat.Fract(p[0]*scale-0.5)-0.5) / fw[0]
	gz := math32.Abs(mat.Fract(p[2]*scale-0.5)-0.5) / fw[1]
	l := math32.Min(gx, gz)

	c := g.params.LineColor
	c[3] *= 1 - math32.Min(l, 1)

	if band := g.params.AxisBand; band > 0 {
		if math32.Abs(p[0]) < band*math32.Min(fw[0], 1) {
			c[2] = 1 // z axis
		}
		if math32.Abs(p[2]) < band*math32.Min(fw[1], 1) {
			c[0] = 1 // x axis
		}
	}
	return c
}

func fwidth(v, dx, dy float32) float32 {
	w := math32.Abs(dx-v) + math32.Abs(dy-v)
	if math32.IsNaN(w) {
		return math32.Inf(1)
	}
	return w
}
