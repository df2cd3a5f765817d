package camera

import (
	"github.com/seqsense/pcdoverlay/mat"
)

const (
	DefaultRotateSensitivity = 0.2
	DefaultPanScale          = 0.02

	yDeadband = 20
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Drag turns a mouse drag into camera motion. The left button rotates,
// the middle button pans and the right button moves forward. Offsets are always taken from the drag start
// position, so repeated Move calls do not accumulate error.
type Drag struct {
	Sensitivity float32
	PanScale    float32

	dragging     bool
	button       Button
	x0, y0       int
	yaw0, pitch0 float32
	position0    mat.Vec3
}

func (d *Drag) Dragging() bool {
	return d.dragging
}

func (d *Drag) Start(c *Camera, x, y int, b Button) {
	d.dragging = true
	d.button = b
	d.x0, d.y0 = x, y
	d.yaw0, d.pitch0 = c.Yaw(), c.Pitch()
	d.position0 = c.Position
}

func (d *Drag) End(c *Camera, x, y, width, height int) {
	if !d.dragging {
		return
	}
	d.Move(c, x, y, width, height)
	d.dragging = false
}

func (d *Drag) Move(c *Camera, x, y, width, height int) {
	if !d.dragging {
		return
	}
	switch d.button {
	case ButtonLeft:
		sens := d.Sensitivity
		if sens == 0 {
			sens = DefaultRotateSensitivity
		}
		xDiff := float32(x - d.x0)
		yDiff := float32(y - d.y0)
		if yDiff < -yDeadband {
			yDiff += yDeadband
		} else if yDiff > yDeadband {
			yDiff -= yDeadband
		} else {
			yDiff = 0
		}
		c.SetAngles(d.yaw0+sens*xDiff, d.pitch0-sens*yDiff, true)
	case ButtonMiddle:
		scale := d.PanScale
		if scale == 0 {
			scale = DefaultPanScale
		}
		c.Position = d.position0
		c.Pan(float32(d.x0), float32(d.y0), float32(x), float32(y), scale, width, height)
	case ButtonRight:
		c.Position = d.position0
		c.MoveForward(float32(d.y0), float32(y), height)
	}
}
