package overlay

import (
	"testing"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/mat"
)

const (
	testWidth  = 200
	testHeight = 200
)

func floatNear(a, b, tol float32) bool {
	return a-b <= tol && b-a <= tol
}

func colorNear(a, b Color, tol float32) bool {
	for i := range a {
		if !floatNear(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func pixel(ndc mat.Vec2) Pixel {
	return Pixel{
		NDC:  ndc,
		Step: mat.Vec2{2.0 / testWidth, 2.0 / testHeight},
	}
}

func newTestTransform(eye, center, up mat.Vec3) camera.Transform {
	return camera.NewTransform(
		mat.LookAt(eye, center, up),
		mat.Perspective(1, 1, 0.1, 100),
	)
}

func TestColor(t *testing.T) {
	c := Color{0.5, 0.25, 0.8, 0.5}
	if s := c.ScaleRGB(2); s != (Color{1, 0.5, 1.6, 0.5}) {
		t.Errorf("Unexpected scaled color %v", s)
	}
	if s := c.Add(Color{0.6, 0, 0, 0.6}).Clamp(); !colorNear(s, Color{1, 0.25, 0.8, 1}, 1e-6) {
		t.Errorf("Unexpected clamped color %v", s)
	}
}

func TestShaderFunc(t *testing.T) {
	var s Shader = ShaderFunc(func(px Pixel) (Fragment, bool) {
		return Fragment{Color: Color{px.NDC[0], px.NDC[1], 0, 1}}, px.NDC[0] > 0
	})
	if f, ok := s.Shade(pixel(mat.Vec2{0.5, 0.25})); !ok || f.Color != (Color{0.5, 0.25, 0, 1}) {
		t.Errorf("Unexpected result %v %v", f, ok)
	}
	if _, ok := s.Shade(pixel(mat.Vec2{-0.5, 0.25})); ok {
		t.Error("Expected discard")
	}
}
