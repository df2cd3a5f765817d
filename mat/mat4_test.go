package mat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMul(t *testing.T) {
	m0 := Translate(0.1, 0.2, 0.3)
	m1 := Rotate(1, 0, 0, 0.1)
	m2 := Rotate(0, 1, 0, 0.1)
	m3 := Perspective(1.2, 1.5, 0.1, 100)

	r := Mul(m3, Mul(m0, Mul(m1, m2)))
	rNaive := mulNaive(m3, mulNaive(m0, mulNaive(m1, m2)))

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a := j*4 + i
			diff := r[a] - rNaive[a]
			if diff < -0.001 || 0.001 < diff {
				t.Errorf("m(%d, %d) expected to be %0.3f, got %0.3f",
					i, j, rNaive[a], r[a],
				)
			}
		}
	}
}

func mulNaive(m, a Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[4*k+i] * a[4*j+k]
			}
			out[4*j+i] = sum
		}
	}
	return out
}

func TestInv(t *testing.T) {
	view := LookAt(Vec3{1, 2, 3}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	proj := Perspective(1.0, 4.0/3.0, 0.1, 100)

	m := Mul(proj, view)
	mi := Inv(m)

	diag := Mul(m, mi)
	for i := 0; i < 4; i++ {
		t.Logf("%+0.1f %+0.1f %+0.1f %+0.1f", diag[4*i+0], diag[4*i+1], diag[4*i+2], diag[4*i+3])
		for j := 0; j < 4; j++ {
			if i == j {
				if diag[4*i+j] < 0.999 || 1.001 < diag[4*i+j] {
					t.Errorf("m(%d, %d): %0.4f", i, j, diag[4*i+j])
				}
			} else {
				if diag[4*i+j] < -0.001 || 0.001 < diag[4*i+j] {
					t.Errorf("m(%d, %d): %0.4f", i, j, diag[4*i+j])
				}
			}
		}
	}
}

func TestTransformPoint(t *testing.T) {
	view := LookAt(Vec3{4, 3, 2}, Vec3{0, 1, 0}, Vec3{0, 1, 0})
	proj := Perspective(0.8, 1, 0.5, 50)
	m := Mul(proj, view)

	testCases := map[string]Vec3{
		"Origin":   {0, 0, 0},
		"Target":   {0, 1, 0},
		"Offset":   {1, -2, 0.5},
		"FarPoint": {-10, 3, -12},
	}
	for name, in := range testCases {
		in := in
		t.Run(name, func(t *testing.T) {
			v := TransformPoint(m, in)
			vRef := mgl32.TransformCoordinate(mgl32.Vec3(in), mgl32.Mat4(m))
			for i := 0; i < 3; i++ {
				diff := v[i] - vRef[i]
				if diff < -0.0001 || 0.0001 < diff {
					t.Errorf("v(%d) expected to be %0.5f, got %0.5f", i, vRef[i], v[i])
				}
			}
		})
	}
}

func TestTransformDir(t *testing.T) {
	m := Mul(Translate(5, 6, 7), Rotate(0, 1, 0, 1.5707964))
	d := TransformDir(m, Vec3{1, 0, 0})
	expected := Vec3{0, 0, -1}
	if diff := d.Sub(expected); diff.Norm() > 0.0001 {
		t.Errorf("Expected %v, got %v", expected, d)
	}
}
