// Package shader holds the GLSL ES 3.00 versions of the overlay programs
// and the uniform values feeding them.
package shader

import (
	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/equirect"
	"github.com/seqsense/pcdoverlay/intersect"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
	"github.com/seqsense/pcdoverlay/raster"
)

// ProgramSource is a vertex and fragment shader pair with the names of
// every uniform it declares.
type ProgramSource struct {
	Name     string
	Vertex   string
	Fragment string
	Uniforms []string
}

var (
	GridProgram = ProgramSource{
		Name:     "grid",
		Vertex:   gridVertexSource,
		Fragment: gridFragmentSource,
		Uniforms: []string{
			"uInvViewProj", "uViewProj",
			"uLineColor", "uLineAlpha", "uScaleMajor", "uScaleMinor",
			"uAxisBand", "uFadeStart", "uReferenceNear", "uReferenceFar",
		},
	}
	SphereProgram = ProgramSource{
		Name:     "sphere",
		Vertex:   quadVertexSource,
		Fragment: sphereFragmentSource,
		Uniforms: []string{
			"uViewProj", "uInvViewProj", "uCenter", "uRadius",
			"uInsideColor", "uInsideAlpha", "uOutsideColor", "uOutsideAlpha",
		},
	}
	EnvironmentProgram = ProgramSource{
		Name:     "environment",
		Vertex:   quadVertexSource,
		Fragment: environmentFragmentSource,
		Uniforms: []string{
			"uInvViewProj", "uModel", "uEnvironment", "uStrength",
			"uYaw", "uYawSpan", "uPitchMin", "uPitchSpan",
		},
	}
	BlitProgram = ProgramSource{
		Name:     "blit",
		Vertex:   quadVertexSource,
		Fragment: blitFragmentSource,
		Uniforms: []string{"uImage", "uOpacity"},
	}
	FaceProgram = ProgramSource{
		Name:     "face",
		Vertex:   faceVertexSource,
		Fragment: faceFragmentSource,
		Uniforms: []string{
			"uViewProj", "uFrontColor", "uFrontAlpha", "uBackColor", "uBackAlpha",
		},
	}
	PointProgram = ProgramSource{
		Name:     "point",
		Vertex:   pointVertexSource,
		Fragment: pointFragmentSource,
		Uniforms: []string{
			"uModelViewMatrix", "uProjectionMatrix", "uZMin", "uZRange", "uPointSizeBase",
		},
	}
)

func Programs() []ProgramSource {
	return []ProgramSource{
		GridProgram, SphereProgram, EnvironmentProgram, BlitProgram, FaceProgram, PointProgram,
	}
}

// QuadVertices are the two triangles of the full screen quad in NDC.
var QuadVertices = []float32{
	1, 1,
	-1, -1,
	-1, 1,
	-1, -1,
	1, 1,
	1, -1,
}

// Uniforms maps uniform names to values of type mat.Mat4, mat.Vec3,
// float32 or int (sampler unit).
type Uniforms map[string]interface{}

func colorUniforms(u Uniforms, name string, c overlay.Color) {
	u["u"+name+"Color"] = mat.Vec3{c[0], c[1], c[2]}
	u["u"+name+"Alpha"] = c[3]
}

// GridUniforms uses the first two scales of p. A single scale is drawn
// twice.
func GridUniforms(t camera.Transform, p overlay.GridParams) Uniforms {
	major, minor := float32(1), float32(1)
	switch {
	case len(p.Scales) >= 2:
		major, minor = p.Scales[0], p.Scales[1]
	case len(p.Scales) == 1:
		major, minor = p.Scales[0], p.Scales[0]
	}
	u := Uniforms{
		"uInvViewProj":   t.InvViewProj,
		"uViewProj":      t.ViewProj,
		"uScaleMajor":    major,
		"uScaleMinor":    minor,
		"uAxisBand":      p.AxisBand,
		"uFadeStart":     p.FadeStart,
		"uReferenceNear": p.Reference.Near,
		"uReferenceFar":  p.Reference.Far,
	}
	colorUniforms(u, "Line", p.LineColor)
	return u
}

func SphereUniforms(t camera.Transform, s intersect.Sphere, inside, outside overlay.Color) Uniforms {
	u := Uniforms{
		"uViewProj":    t.ViewProj,
		"uInvViewProj": t.InvViewProj,
		"uCenter":      s.Center,
		"uRadius":      s.Radius,
	}
	colorUniforms(u, "Inside", inside)
	colorUniforms(u, "Outside", outside)
	return u
}

// EnvironmentUniforms expects the panorama bound to texture unit 0.
func EnvironmentUniforms(t camera.Transform, model mat.Mat4, strength float32, r equirect.Range) Uniforms {
	return Uniforms{
		"uInvViewProj": t.InvViewProj,
		"uModel":       model,
		"uEnvironment": 0,
		"uStrength":    strength,
		"uYaw":         r.Yaw,
		"uYawSpan":     r.YawSpan,
		"uPitchMin":    r.PitchMin,
		"uPitchSpan":   r.PitchSpan,
	}
}

func BlitUniforms(opacity float32) Uniforms {
	return Uniforms{
		"uImage":   0,
		"uOpacity": opacity,
	}
}

func FaceUniforms(t camera.Transform, fc raster.FaceColors) Uniforms {
	u := Uniforms{"uViewProj": t.ViewProj}
	colorUniforms(u, "Front", fc.Front)
	colorUniforms(u, "Back", fc.Back)
	return u
}

func PointUniforms(t camera.Transform, model mat.Mat4, ps raster.PointStyle) Uniforms {
	return Uniforms{
		"uModelViewMatrix":  mat.Mul(t.View, model),
		"uProjectionMatrix": t.Projection,
		"uZMin":             ps.ZMin,
		"uZRange":           ps.ZMax - ps.ZMin,
		"uPointSizeBase":    ps.SizeBase,
	}
}
