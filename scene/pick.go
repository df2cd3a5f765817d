package scene

import (
	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/intersect"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/raycast"
)

// Pick returns the ground plane point under window position (x, y).
func Pick(cam *camera.Camera, x, y float32, width, height int) (mat.Vec3, bool) {
	ray := raycast.Ray{
		Origin:    cam.Position,
		Direction: cam.RaycastDirection(x, y, width, height),
	}
	res := intersect.GroundRay(ray)
	if !res.Hit {
		return mat.Vec3{}, false
	}
	return ray.At(res.Distance), true
}
