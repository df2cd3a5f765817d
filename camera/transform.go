package camera

import (
	"github.com/seqsense/pcdoverlay/mat"
)

// Transform is the camera state of one draw call. The inverses are derived
// once here and handed to every per-pixel invocation by value.
type Transform struct {
	View        mat.Mat4
	Projection  mat.Mat4
	ViewProj    mat.Mat4
	InvViewProj mat.Mat4
	InvView     mat.Mat4
}

func NewTransform(view, projection mat.Mat4) Transform {
	vp := mat.Mul(projection, view)
	return Transform{
		View:        view,
		Projection:  projection,
		ViewProj:    vp,
		InvViewProj: mat.Inv(vp),
		InvView:     mat.Inv(view),
	}
}

// Eye returns the camera position in world space.
func (t Transform) Eye() mat.Vec3 {
	return mat.TransformPoint(t.InvView, mat.Vec3{})
}
