// Package raycast reconstructs per-pixel world space rays from the inverse
// view-projection matrix.
package raycast

import (
	"github.com/seqsense/pcdoverlay/mat"
)

// Ray is a half line. Direction is unit length.
type Ray struct {
	Origin    mat.Vec3
	Direction mat.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mat.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// NearFar returns the world space points where the line through ndc crosses
// the near and the far clip planes. invViewProj must be the inverse of a
// non-singular projection*view matrix.
func NearFar(ndc mat.Vec2, invViewProj mat.Mat4) (near, far mat.Vec3) {
	near = mat.MulVec4(invViewProj, mat.Vec4{ndc[0], ndc[1], -1, 1}).Divide()
	far = mat.MulVec4(invViewProj, mat.Vec4{ndc[0], ndc[1], 1, 1}).Divide()
	return near, far
}

// FromNDC returns the ray starting on the near plane at ndc.
func FromNDC(ndc mat.Vec2, invViewProj mat.Mat4) Ray {
	near, far := NearFar(ndc, invViewProj)
	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalized(),
	}
}

// PixelToNDC converts window coordinates (origin at the top-left corner,
// y down) to NDC (y up).
func PixelToNDC(x, y float32, width, height int) mat.Vec2 {
	return mat.Vec2{
		x*2/float32(width) - 1,
		1 - y*2/float32(height),
	}
}

// PixelCenter returns the NDC position of the center of pixel (i, j).
func PixelCenter(i, j, width, height int) mat.Vec2 {
	return PixelToNDC(float32(i)+0.5, float32(j)+0.5, width, height)
}
