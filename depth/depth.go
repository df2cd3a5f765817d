// Package depth converts world space points into depth buffer values.
//
// An analytically intersected surface has no rasterized depth of its own.
// Writing the value computed here makes it depth-test against ordinary
// triangles drawn with the same camera.
package depth

import (
	"github.com/seqsense/pcdoverlay/mat"
)

// Range is the viewport depth range the device depth is mapped into.
type Range struct {
	Near, Far float32
}

var DefaultRange = Range{Near: 0, Far: 1}

// Window maps device depth in [-1, 1] into the range.
func (r Range) Window(device float32) float32 {
	return ((r.Far-r.Near)*device + r.Near + r.Far) / 2
}

// Clamp limits d to the range as fixed-function depth output does.
func (r Range) Clamp(d float32) float32 {
	lo, hi := r.Near, r.Far
	if lo > hi {
		lo, hi = hi, lo
	}
	return mat.Clamp(d, lo, hi)
}

// Reference parameterizes the linear depth used for fading.
// It does not have to match the camera clip planes.
type Reference struct {
	Near, Far float32
}

var DefaultReference = Reference{Near: 0.1, Far: 100}

// Linear returns the eye distance of a device depth under the reference
// planes, normalized by Far.
//
// device is treated as a [0, 1] value and mapped to [-1, 1] before
// linearization, so the grid fade curve is kept for NDC input too.
func (r Reference) Linear(device float32) float32 {
	d := device*2 - 1
	linear := 2 * r.Near * r.Far / (r.Far + r.Near - d*(r.Far-r.Near))
	return linear / r.Far
}

// Device returns the perspective-divided clip space z of p.
func Device(p mat.Vec3, viewProj mat.Mat4) float32 {
	clip := mat.MulVec4(viewProj, mat.Point(p))
	return clip[2] / clip[3]
}

// Reconciler computes depth values for points seen through ViewProj.
type Reconciler struct {
	ViewProj  mat.Mat4
	Range     Range
	Reference Reference
}

// NewReconciler returns a Reconciler writing into r and fading with ref.
func NewReconciler(viewProj mat.Mat4, r Range, ref Reference) Reconciler {
	return Reconciler{ViewProj: viewProj, Range: r, Reference: ref}
}

// Depth returns the depth buffer value a rasterizer would write at p.
func (r Reconciler) Depth(p mat.Vec3) float32 {
	return r.Range.Window(Device(p, r.ViewProj))
}

// Linear returns the normalized fade depth at p.
func (r Reconciler) Linear(p mat.Vec3) float32 {
	return r.Reference.Linear(Device(p, r.ViewProj))
}
