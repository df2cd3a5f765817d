package mat

import (
	"github.com/go-gl/mathgl/mgl32"
	pmat "github.com/seqsense/pcgol/mat"
)

// Mat4 is a column-major 4x4 matrix, m[4*col+row].
type Mat4 = pmat.Mat4

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b.
func Mul(a, b Mat4) Mat4 {
	return Mat4(mgl32.Mat4(a).Mul4(mgl32.Mat4(b)))
}

// Inv returns the inverse of a general (projective) matrix.
// The result for a singular matrix is undefined.
func Inv(m Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Inv())
}

func MulVec4(m Mat4, a Vec4) Vec4 {
	var out Vec4
	for i := 0; i < 4; i++ {
		out[i] = m[4*0+i]*a[0] + m[4*1+i]*a[1] + m[4*2+i]*a[2] + m[4*3+i]*a[3]
	}
	return out
}

// TransformPoint transforms p as (x, y, z, 1) and divides by the resulting w.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return MulVec4(m, Point(p)).Divide()
}

// TransformDir transforms d as (x, y, z, 0), ignoring translation.
func TransformDir(m Mat4, d Vec3) Vec3 {
	return MulVec4(m, Vec4{d[0], d[1], d[2], 0}).Vec3()
}
