package mat

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective returns an OpenGL style projection matrix mapping the view
// frustum into the [-1, 1] NDC cube. fovy is in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovy, aspect, near, far))
}

func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// LookAt returns a view matrix placing the camera at eye looking towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(center), mgl32.Vec3(up)))
}
