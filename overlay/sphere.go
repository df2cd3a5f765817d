package overlay

import (
	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/depth"
	"github.com/seqsense/pcdoverlay/intersect"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/raycast"
)

// Surface colors a sphere hit by its outward unit normal.
type Surface interface {
	SurfaceColor(normal mat.Vec3) Color
}

// SphereGizmo draws an analytic sphere with exact depth.
// Pixels where the near plane is inside the sphere get InsideColor,
// others get OutsideColor, or the Surface color if set.
type SphereGizmo struct {
	Sphere       intersect.Sphere
	InsideColor  Color
	OutsideColor Color
	Surface      Surface

	invViewProj mat.Mat4
	depth       depth.Reconciler
}

func NewSphereGizmo(t camera.Transform, r depth.Range, s intersect.Sphere, inside, outside Color) *SphereGizmo {
	return &SphereGizmo{
		Sphere:       s,
		InsideColor:  inside,
		OutsideColor: outside,
		invViewProj:  t.InvViewProj,
		depth:        depth.NewReconciler(t.ViewProj, r, depth.Reference{}),
	}
}

func (g *SphereGizmo) Shade(px Pixel) (Fragment, bool) {
	ray := raycast.FromNDC(px.NDC, g.invViewProj)
	res := g.Sphere.Intersect(ray)
	if !res.Hit {
		return Fragment{}, false
	}
	p := ray.At(res.Distance)

	var c Color
	switch {
	case res.InsideOrigin:
		c = g.InsideColor
	case g.Surface != nil:
		c = g.Surface.SurfaceColor(p.Sub(g.Sphere.Center).Normalized())
	default:
		c = g.OutsideColor
	}
	return Fragment{
		Color:       c,
		Depth:       g.depth.Range.Clamp(g.depth.Depth(p)),
		WritesDepth: true,
	}, true
}
