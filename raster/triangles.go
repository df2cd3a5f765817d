package raster

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/depth"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
	"github.com/seqsense/pcdoverlay/raycast"
)

// Triangle is given in world coordinates. Counter-clockwise on screen is
// front facing.
type Triangle [3]mat.Vec3

// FaceColors tints triangles by facing.
type FaceColors struct {
	Front, Back overlay.Color
}

var DefaultFaceColors = FaceColors{
	Front: overlay.Color{0.7, 0.7, 0.7, 1},
	Back:  overlay.Color{0.8, 0.2, 0.2, 1},
}

type screenTriangle struct {
	v     [3]mat.Vec3 // NDC
	area  float32
	min   mat.Vec2
	max   mat.Vec2
	color overlay.Color
	r     depth.Range
}

func edge(a, b mat.Vec3, x, y float32) float32 {
	return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
}

func (s *screenTriangle) rows(height int) (int, int) {
	h := float32(height)
	return int(math32.Ceil((1-s.max[1])*h/2 - 0.5)), int(math32.Floor((1-s.min[1])*h/2 - 0.5))
}

func (s *screenTriangle) drawRow(t *Target, y int, st State) {
	w := float32(t.Width)
	x0 := int(math32.Ceil((s.min[0]+1)*w/2 - 0.5))
	x1 := int(math32.Floor((s.max[0]+1)*w/2 - 0.5))
	if x0 < 0 {
		x0 = 0
	}
	if x1 > t.Width-1 {
		x1 = t.Width - 1
	}
	for x := x0; x <= x1; x++ {
		p := raycast.PixelCenter(x, y, t.Width, t.Height)
		w0 := edge(s.v[1], s.v[2], p[0], p[1]) / s.area
		w1 := edge(s.v[2], s.v[0], p[0], p[1]) / s.area
		w2 := edge(s.v[0], s.v[1], p[0], p[1]) / s.area
		if w0 < 0 || w1 < 0 || w2 < 0 {
			continue
		}
		// NDC depth is affine in screen space.
		z := w0*s.v[0][2] + w1*s.v[1][2] + w2*s.v[2][2]
		if z < -1 || 1 < z {
			continue
		}
		t.write(x, y, overlay.Fragment{
			Color:       s.color,
			Depth:       s.r.Window(z),
			WritesDepth: true,
		}, st)
	}
}

// DrawTriangles draws flat shaded triangles. Triangles with a vertex at or
// behind the eye plane are dropped instead of being clipped.
func (t *Target) DrawTriangles(ctx context.Context, tris []Triangle, tr camera.Transform, r depth.Range, fc FaceColors, st State) error {
	prims := make([]primitive, 0, len(tris))
	for _, tri := range tris {
		s := &screenTriangle{r: r}
		behind := false
		for i, v := range tri {
			clip := mat.MulVec4(tr.ViewProj, mat.Point(v))
			if clip[3] <= 0 {
				behind = true
				break
			}
			s.v[i] = clip.Divide()
		}
		if behind {
			continue
		}
		s.area = edge(s.v[0], s.v[1], s.v[2][0], s.v[2][1])
		if s.area == 0 {
			continue
		}
		s.color = fc.Front
		if s.area < 0 {
			s.color = fc.Back
		}
		s.min = mat.Vec2{
			math32.Min(s.v[0][0], math32.Min(s.v[1][0], s.v[2][0])),
			math32.Min(s.v[0][1], math32.Min(s.v[1][1], s.v[2][1])),
		}
		s.max = mat.Vec2{
			math32.Max(s.v[0][0], math32.Max(s.v[1][0], s.v[2][0])),
			math32.Max(s.v[0][1], math32.Max(s.v[1][1], s.v[2][1])),
		}
		prims = append(prims, s)
	}
	return t.drawPrimitives(ctx, prims, st)
}

// boxFaces lists the corner indices (bit 0: x, bit 1: y, bit 2: z) of each
// face, counter-clockwise seen from outside.
var boxFaces = [6][4]int{
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
}

// Box returns the 12 triangles of an axis aligned box with outward front faces.
func Box(min, max mat.Vec3) []Triangle {
	var corners [8]mat.Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = max[axis]
			} else {
				corners[i][axis] = min[axis]
			}
		}
	}
	tris := make([]Triangle, 0, 12)
	for _, f := range boxFaces {
		a, b, c, d := corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]
		tris = append(tris, Triangle{a, b, c}, Triangle{a, c, d})
	}
	return tris
}

// Transform returns the triangles transformed by m.
func Transform(tris []Triangle, m mat.Mat4) []Triangle {
	out := make([]Triangle, len(tris))
	for i, tri := range tris {
		for j, v := range tri {
			out[i][j] = mat.TransformPoint(m, v)
		}
	}
	return out
}
