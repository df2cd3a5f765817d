// Package intersect solves ray/primitive intersections for the overlay shaders.
package intersect

import (
	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/raycast"
)

// Result of a ray query. Distance is along the ray direction and only
// meaningful when Hit is true.
type Result struct {
	Hit          bool
	Distance     float32
	InsideOrigin bool
}

// Sphere is a solid ball in world space.
type Sphere struct {
	Center mat.Vec3
	Radius float32
}

// Intersect returns the first surface crossing in front of the ray origin.
// If the origin is inside the sphere the exit point is reported and
// InsideOrigin is set. Tangent rays are misses.
func (s Sphere) Intersect(r raycast.Ray) Result {
	oc := r.Origin.Sub(s.Center)
	b := r.Direction.Dot(oc)
	c := oc.NormSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc <= 0 {
		return Result{}
	}
	sq := math32.Sqrt(disc)
	tNear, tFar := -b-sq, -b+sq
	if tNear >= 0 {
		return Result{Hit: true, Distance: tNear}
	}
	if tFar < 0 {
		// Sphere is entirely behind the origin.
		return Result{}
	}
	return Result{Hit: true, Distance: tFar, InsideOrigin: true}
}

// Contains reports whether p lies strictly inside the sphere.
func (s Sphere) Contains(p mat.Vec3) bool {
	return p.Sub(s.Center).NormSq() < s.Radius*s.Radius
}
