package scene

import (
	"context"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/raster"
)

const wheelZoomStep = 2

// Controller maps pointer and key input to camera motion and scene edits.
// Window coordinates have the origin at the top-left corner.
type Controller struct {
	Scene         *Scene
	Camera        *camera.Camera
	Width, Height int

	drag  camera.Drag
	wheel camera.WheelNormalizer
	guard camera.ClickGuard

	button   camera.Button
	pressed  bool
	lastX    int
	lastY    int
	modified bool
}

func NewController(s *Scene, cam *camera.Camera, width, height int) *Controller {
	return &Controller{
		Scene:    s,
		Camera:   cam,
		Width:    width,
		Height:   height,
		modified: true,
	}
}

func (c *Controller) Resize(width, height int) {
	if width == c.Width && height == c.Height {
		return
	}
	c.Width, c.Height = width, height
	c.modified = true
}

func (c *Controller) MouseDown(x, y int, b camera.Button) {
	c.pressed = true
	c.button = b
	c.lastX, c.lastY = x, y
	c.guard.DragStart()
	c.drag.Start(c.Camera, x, y, b)
}

func (c *Controller) MouseMove(x, y int) {
	if !c.pressed || (x == c.lastX && y == c.lastY) {
		return
	}
	c.lastX, c.lastY = x, y
	c.guard.Move()
	c.drag.Move(c.Camera, x, y, c.Width, c.Height)
	c.modified = true
}

// MouseUp ends a drag. A left button release without motion is a click,
// which moves the sphere gizmo onto the ground under the cursor.
func (c *Controller) MouseUp(x, y int) {
	if !c.pressed {
		return
	}
	c.MouseMove(x, y)
	c.pressed = false
	c.drag.End(c.Camera, x, y, c.Width, c.Height)
	c.guard.DragEnd()

	if c.button == camera.ButtonLeft && c.guard.Click() {
		if c.Scene.MoveSphere(c.Camera, float32(x), float32(y), c.Width, c.Height) {
			c.modified = true
		}
	}
}

// Wheel zooms by a raw wheel delta. Positive values zoom in.
func (c *Controller) Wheel(delta float64) {
	d, _ := c.wheel.Normalize(delta)
	if d == 0 {
		return
	}
	c.Camera.ZoomBy(float32(d) * wheelZoomStep)
	c.modified = true
}

func (c *Controller) ToggleGrid() {
	c.Scene.ShowGrid = !c.Scene.ShowGrid
	c.modified = true
}

func (c *Controller) ToggleSphere() {
	c.Scene.ShowSphere = !c.Scene.ShowSphere
	c.modified = true
}

// Invalidate forces the next Modified call to report true.
func (c *Controller) Invalidate() {
	c.modified = true
}

// Modified reports whether the view changed since the last call.
func (c *Controller) Modified() bool {
	m := c.modified
	c.modified = false
	return m
}

func (c *Controller) Render(ctx context.Context, dst *raster.Target) error {
	return c.Scene.Render(ctx, dst, c.Camera)
}
