package mat

import (
	"github.com/go-gl/mathgl/mgl32"
	pmat "github.com/seqsense/pcgol/mat"
)

func Translate(x, y, z float32) Mat4 {
	return pmat.Translate(x, y, z)
}

// Rotate returns a rotation of ang radians around the axis (x, y, z).
func Rotate(x, y, z, ang float32) Mat4 {
	return Mat4(mgl32.HomogRotate3D(ang, mgl32.Vec3{x, y, z}.Normalize()))
}
