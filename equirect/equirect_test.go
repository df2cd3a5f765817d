package equirect

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/seqsense/pcdoverlay/mat"
)

func floatNear(a, b, tol float32) bool {
	return a-b <= tol && b-a <= tol
}

func TestProjectFullSphere(t *testing.T) {
	r := FullSphere()
	testCases := map[string]struct {
		dir      mat.Vec3
		expected mat.Vec2
	}{
		"PlusX":   {mat.Vec3{1, 0, 0}, mat.Vec2{0.5, 0.5}},
		"MinusZ":  {mat.Vec3{0, 0, -1}, mat.Vec2{0.25, 0.5}},
		"PlusZ":   {mat.Vec3{0, 0, 1}, mat.Vec2{0.75, 0.5}},
		"Up":      {mat.Vec3{0, 1, 0}, mat.Vec2{0.5, 1}},
		"Down":    {mat.Vec3{0, -1, 0}, mat.Vec2{0.5, 0}},
		"Scaled":  {mat.Vec3{5, 0, 0}, mat.Vec2{0.5, 0.5}},
		"Oblique": {mat.Vec3{1, 1, 0}, mat.Vec2{0.5, 0.75}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			uv := r.Project(tt.dir)
			if !floatNear(uv[0], tt.expected[0], 1e-5) || !floatNear(uv[1], tt.expected[1], 1e-5) {
				t.Errorf("Expected %v, got %v", tt.expected, uv)
			}
			if !Contains(uv) {
				t.Errorf("Expected to be inside the image, got %v", uv)
			}
		})
	}
}

func TestProjectMinusXSeam(t *testing.T) {
	uv := FullSphere().Project(mat.Vec3{-1, 0, 0})
	// atan2 gives +-pi on the seam; either image edge is valid.
	if !floatNear(uv[0], 0, 1e-5) && !floatNear(uv[0], 1, 1e-5) {
		t.Errorf("Expected u on the image edge, got %f", uv[0])
	}
}

func TestProjectPartialRange(t *testing.T) {
	// Upper hemisphere only.
	r := Range{
		Yaw:       math32.Pi,
		YawSpan:   -2 * math32.Pi,
		PitchMin:  math32.Pi / 2,
		PitchSpan: math32.Pi / 2,
	}
	if uv := r.Project(mat.Vec3{0, -1, 0}); Contains(uv) {
		t.Errorf("Downward direction must be outside, got %v", uv)
	}
	if uv := r.Project(mat.Vec3{0, 1, 0}); !floatNear(uv[1], 1, 1e-5) {
		t.Errorf("Upward direction expected v=1, got %v", uv)
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	r := FullSphere()
	for _, dir := range []mat.Vec3{
		{1, 0, 0},
		{0.3, 0.4, -0.5},
		{-0.2, -0.9, 0.1},
		{0.1, 0.2, 0.9},
	} {
		dir = dir.Normalized()
		back := r.Direction(r.Project(dir))
		if back.Sub(dir).Norm() > 1e-4 {
			t.Errorf("Round trip of %v gave %v", dir, back)
		}
	}
}

func TestProjectDeterministic(t *testing.T) {
	r := FullSphere()
	d := mat.Vec3{0.1, -0.3, 0.7}
	if r.Project(d) != r.Project(d) {
		t.Error("Repeated calls must return identical values")
	}
}
