package scene

import (
	"testing"
	"time"

	"github.com/seqsense/pcdoverlay/camera"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	c := testConfig()
	s, err := New(c)
	if err != nil {
		t.Fatal(err)
	}
	ctl := NewController(s, c.Camera.New(), c.Width, c.Height)
	now := time.Unix(0, 0)
	ctl.guard.Now = func() time.Time { return now }
	ctl.wheel.Now = func() time.Time {
		now = now.Add(50 * time.Millisecond)
		return now
	}
	if !ctl.Modified() {
		t.Fatal("First frame must be drawn")
	}
	return ctl
}

func TestController_click(t *testing.T) {
	ctl := newTestController(t)
	center := ctl.Scene.Config.Sphere.Center

	ctl.MouseDown(10, 40, camera.ButtonLeft)
	ctl.MouseUp(10, 40)
	if !ctl.Modified() {
		t.Error("Click must modify the view")
	}
	if ctl.Scene.Config.Sphere.Center == center {
		t.Error("Click must move the sphere")
	}
}

func TestController_drag(t *testing.T) {
	ctl := newTestController(t)
	center := ctl.Scene.Config.Sphere.Center
	yaw := ctl.Camera.Yaw()

	ctl.MouseDown(10, 10, camera.ButtonLeft)
	ctl.MouseMove(30, 10)
	ctl.MouseUp(30, 10)

	if !ctl.Modified() {
		t.Error("Drag must modify the view")
	}
	if ctl.Scene.Config.Sphere.Center != center {
		t.Error("Drag must not move the sphere")
	}
	if ctl.Camera.Yaw() == yaw {
		t.Error("Drag must rotate the camera")
	}
}

func TestController_pan(t *testing.T) {
	ctl := newTestController(t)
	pos := ctl.Camera.Position

	ctl.MouseDown(10, 10, camera.ButtonMiddle)
	ctl.MouseMove(20, 30)
	ctl.MouseUp(20, 30)

	if ctl.Camera.Position == pos {
		t.Error("Middle drag must pan the camera")
	}
	if ctl.Scene.Config.Sphere.Center != ([3]float32{}) {
		t.Error("Middle click must not move the sphere")
	}
}

func TestController_moveWithoutPress(t *testing.T) {
	ctl := newTestController(t)
	ctl.MouseMove(5, 5)
	ctl.MouseUp(5, 5)
	if ctl.Modified() {
		t.Error("Hovering must not modify the view")
	}
}

func TestController_wheel(t *testing.T) {
	ctl := newTestController(t)
	zoom := ctl.Camera.Zoom()
	ctl.Wheel(1)
	if ctl.Camera.Zoom() >= zoom {
		t.Errorf("Positive wheel must zoom in, fov %f -> %f", zoom, ctl.Camera.Zoom())
	}
	zoom = ctl.Camera.Zoom()
	ctl.Wheel(0)
	if ctl.Camera.Zoom() != zoom {
		t.Error("Zero wheel delta must not zoom")
	}
}

func TestController_toggle(t *testing.T) {
	ctl := newTestController(t)
	ctl.ToggleGrid()
	ctl.ToggleSphere()
	if ctl.Scene.ShowGrid || ctl.Scene.ShowSphere {
		t.Error("Toggle must hide the grid and the sphere")
	}
	if !ctl.Modified() || ctl.Modified() {
		t.Error("Modified must report once")
	}

	ctl.Resize(ctl.Width, ctl.Height)
	if ctl.Modified() {
		t.Error("Same size must not modify the view")
	}
	ctl.Resize(10, 10)
	if !ctl.Modified() {
		t.Error("Resize must modify the view")
	}
	ctl.Invalidate()
	if !ctl.Modified() {
		t.Error("Invalidate must modify the view")
	}
}

func TestController_releaseElsewhere(t *testing.T) {
	ctl := newTestController(t)
	center := ctl.Scene.Config.Sphere.Center

	ctl.MouseDown(10, 10, camera.ButtonLeft)
	ctl.MouseUp(40, 10)
	if ctl.Scene.Config.Sphere.Center != center {
		t.Error("Release away from the press position is a drag, not a click")
	}
}
