package overlay

import (
	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/equirect"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/raycast"
	"github.com/seqsense/pcdoverlay/texture"
)

// uvMargin absorbs rounding at the edges of a full sphere range.
const uvMargin = 1e-5

// Environment draws an equirectangular panorama behind the scene.
// It never writes depth, so it must be drawn first.
type Environment struct {
	Texture  *texture.Texture
	Strength float32
	// Model rotates view directions before projection.
	Model mat.Mat4
	Range equirect.Range

	invViewProj mat.Mat4
}

func NewEnvironment(t camera.Transform, tex *texture.Texture, strength float32) *Environment {
	return &Environment{
		Texture:     tex,
		Strength:    strength,
		Model:       mat.Identity(),
		Range:       equirect.FullSphere(),
		invViewProj: t.InvViewProj,
	}
}

// SurfaceColor returns the environment color seen in direction dir.
// Directions outside a cropped Range are transparent.
func (e *Environment) SurfaceColor(dir mat.Vec3) Color {
	uv := e.Range.Project(mat.TransformDir(e.Model, dir))
	if uv[0] < -uvMargin || 1+uvMargin < uv[0] || uv[1] < -uvMargin || 1+uvMargin < uv[1] {
		return Color{}
	}
	return Color(e.Texture.Sample(uv[0], uv[1])).ScaleRGB(e.Strength)
}

func (e *Environment) Shade(px Pixel) (Fragment, bool) {
	ray := raycast.FromNDC(px.NDC, e.invViewProj)
	c := e.SurfaceColor(ray.Direction)
	if c[3] <= 0 {
		return Fragment{}, false
	}
	return Fragment{Color: c}, true
}
