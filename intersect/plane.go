package intersect

import (
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/raycast"
)

// Ground intersects the segment near->far with the y=0 plane.
// t is the segment parameter; t <= 0 means the plane is not crossed in front
// of the near point and callers must not draw anything. t is not clamped
// to 1, so a plane beyond the far point still yields t > 1.
// A segment parallel to the plane gives a non-finite t.
func Ground(near, far mat.Vec3) (t float32, p mat.Vec3) {
	t = -near[1] / (far[1] - near[1])
	p = near.Add(far.Sub(near).Mul(t))
	return t, p
}

// GroundRay is Ground for a unit ray, reporting the distance along it.
func GroundRay(r raycast.Ray) Result {
	dy := r.Direction[1]
	if dy == 0 {
		return Result{}
	}
	t := -r.Origin[1] / dy
	if t <= 0 {
		return Result{}
	}
	return Result{Hit: true, Distance: t}
}
