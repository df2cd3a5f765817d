// Package equirect maps view directions to equirectangular image coordinates.
package equirect

import (
	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/mat"
)

// Range is the angular window covered by the image, in radians.
// A negative YawSpan flips u so the image is seen from inside the sphere.
type Range struct {
	Yaw       float32
	YawSpan   float32
	PitchMin  float32
	PitchSpan float32
}

// FullSphere covers every direction. -X maps to the horizontal image edges
// and +X to the center column.
func FullSphere() Range {
	return Range{
		Yaw:       math32.Pi,
		YawSpan:   -2 * math32.Pi,
		PitchMin:  0,
		PitchSpan: math32.Pi,
	}
}

// Project returns (u, v) of dir. dir does not need to be normalized but
// must be non-zero. v = 1 is straight up (+Y) and v = 0 straight down.
// Values outside [0, 1] mean the direction is outside the range.
func (r Range) Project(dir mat.Vec3) mat.Vec2 {
	yaw := math32.Atan2(-dir[2], dir[0])
	cos := mat.Clamp(-dir[1]/dir.Norm(), -1, 1)
	pitch := math32.Acos(cos)
	return mat.Vec2{
		(yaw - r.Yaw) / r.YawSpan,
		(pitch - r.PitchMin) / r.PitchSpan,
	}
}

// Direction is the inverse of Project and returns a unit vector.
func (r Range) Direction(uv mat.Vec2) mat.Vec3 {
	yaw := uv[0]*r.YawSpan + r.Yaw
	pitch := uv[1]*r.PitchSpan + r.PitchMin
	s := math32.Sin(pitch)
	return mat.Vec3{
		s * math32.Cos(yaw),
		-math32.Cos(pitch),
		-s * math32.Sin(yaw),
	}
}

// Contains reports whether uv lies inside the image.
func Contains(uv mat.Vec2) bool {
	return 0 <= uv[0] && uv[0] <= 1 && 0 <= uv[1] && uv[1] <= 1
}
