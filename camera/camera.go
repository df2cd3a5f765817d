package camera

import (
	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/mat"
)

const (
	DefaultNear = 0.1
	DefaultFar  = 1000.0
	DefaultZoom = 45.0

	minZoom    = 1.0
	maxZoom    = 90.0
	pitchLimit = 89.0
	panEpsilon = 1e-6
)

// Camera is a yaw/pitch fly camera. Angles and zoom (vertical field of view)
// are in degrees.
type Camera struct {
	Position mat.Vec3
	Near     float32
	Far      float32

	worldUp    mat.Vec3
	yaw, pitch float32
	zoom       float32

	front, right, up mat.Vec3
}

func New(position, up mat.Vec3, yaw, pitch, zoom float32) *Camera {
	c := &Camera{
		Position: position,
		Near:     DefaultNear,
		Far:      DefaultFar,
		worldUp:  up,
		yaw:      yaw,
		pitch:    pitch,
		zoom:     zoom,
	}
	c.update()
	return c
}

func (c *Camera) update() {
	yaw, pitch := mat.Radians(c.yaw), mat.Radians(c.pitch)
	front := mat.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalized()
	c.right = c.front.Cross(c.worldUp).Normalized()
	c.up = c.right.Cross(c.front).Normalized()
}

func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }
func (c *Camera) Zoom() float32  { return c.zoom }

func (c *Camera) Front() mat.Vec3   { return c.front }
func (c *Camera) Right() mat.Vec3   { return c.right }
func (c *Camera) Up() mat.Vec3      { return c.up }
func (c *Camera) WorldUp() mat.Vec3 { return c.worldUp }

// SetAngles sets yaw and pitch. Pitch is clamped to ±89 degrees when
// constrainPitch is set.
func (c *Camera) SetAngles(yaw, pitch float32, constrainPitch bool) {
	c.yaw = yaw
	c.pitch = pitch
	if constrainPitch {
		c.pitch = mat.Clamp(c.pitch, -pitchLimit, pitchLimit)
	}
	c.update()
}

func (c *Camera) View() mat.Mat4 {
	return mat.LookAt(c.Position, c.Position.Add(c.front), c.up)
}

func (c *Camera) Projection(width, height int) mat.Mat4 {
	return mat.Perspective(
		mat.Radians(c.zoom),
		float32(width)/float32(height),
		c.Near, c.Far,
	)
}

// Orthographic returns a pixel-space projection for screen aligned drawing.
func (c *Camera) Orthographic(width, height int) mat.Mat4 {
	return mat.Orthographic(0, float32(width), 0, float32(height), c.Near, c.Far)
}

func (c *Camera) Transform(width, height int) Transform {
	return NewTransform(c.View(), c.Projection(width, height))
}

// Pan moves the camera so that the scene follows the mouse from start to end.
func (c *Camera) Pan(startX, startY, endX, endY, scale float32, width, height int) {
	if math32.Abs(startX-endX) < panEpsilon && math32.Abs(startY-endY) < panEpsilon {
		return
	}
	inv := mat.Inv(mat.Mul(c.Projection(width, height), c.View()))

	unproject := func(x, y float32) mat.Vec3 {
		clipX := x*2/float32(width) - 1
		clipY := 1 - y*2/float32(height)
		return mat.MulVec4(inv, mat.Vec4{clipX, clipY, 0, 1}).Divide()
	}
	dir := unproject(endX, endY).Sub(unproject(startX, startY))

	c.Position = c.Position.Sub(dir.Mul(c.zoom * scale / 2))
}

// Rotate turns the camera around its own origin by the mouse movement.
func (c *Camera) Rotate(startX, startY, endX, endY, sensitivity float32, constrainPitch bool) {
	xOffset := (endX - startX) * sensitivity
	yOffset := (startY - endY) * sensitivity
	c.SetAngles(c.yaw+xOffset, c.pitch+yOffset, constrainPitch)
}

// MoveForward moves the camera along its front vector by the vertical mouse
// movement measured in NDC.
func (c *Camera) MoveForward(startY, endY float32, height int) {
	clipY := 1 - startY*2/float32(height)
	clipEndY := 1 - endY*2/float32(height)
	c.Position = c.Position.Add(c.front.Mul(clipEndY - clipY))
}

// ZoomBy narrows the field of view by scroll degrees, keeping it in [1, 90].
func (c *Camera) ZoomBy(scroll float32) {
	if c.zoom >= minZoom && c.zoom <= maxZoom {
		c.zoom -= scroll
	}
	c.zoom = mat.Clamp(c.zoom, minZoom, maxZoom)
}

// RaycastDirection returns the world space direction of the ray under the
// mouse cursor.
func (c *Camera) RaycastDirection(mouseX, mouseY float32, width, height int) mat.Vec3 {
	x := 2*mouseX/float32(width) - 1
	y := 1 - 2*mouseY/float32(height)

	eye := mat.MulVec4(mat.Inv(c.Projection(width, height)), mat.Vec4{x, y, -1, 1})
	eye = mat.Vec4{eye[0], eye[1], -1, 0}

	world := mat.MulVec4(mat.Inv(c.View()), eye)
	return world.Vec3().Normalized()
}
