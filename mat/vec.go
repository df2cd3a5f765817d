package mat

import (
	pmat "github.com/seqsense/pcgol/mat"
)

type Vec3 = pmat.Vec3

type Vec2 [2]float32

type Vec4 [4]float32

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec2) Add(a Vec2) Vec2 {
	return Vec2{v[0] + a[0], v[1] + a[1]}
}

func (v Vec2) Sub(a Vec2) Vec2 {
	return Vec2{v[0] - a[0], v[1] - a[1]}
}

func (v Vec2) Mul(a float32) Vec2 {
	return Vec2{v[0] * a, v[1] * a}
}

// Point returns the homogeneous point (p, 1).
func Point(p Vec3) Vec4 {
	return Vec4{p[0], p[1], p[2], 1}
}

func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Divide applies the perspective division by w.
func (v Vec4) Divide() Vec3 {
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}
