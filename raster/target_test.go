package raster

import (
	"context"
	"testing"

	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
)

func colorNear(a, b overlay.Color, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d < -tol || tol < d {
			return false
		}
	}
	return true
}

func constShader(f overlay.Fragment) overlay.Shader {
	return overlay.ShaderFunc(func(overlay.Pixel) (overlay.Fragment, bool) {
		return f, true
	})
}

func TestDrawFill(t *testing.T) {
	tg := NewTarget(7, 5)
	tg.Clear(overlay.Color{0, 0, 0, 1}, 1)

	c := overlay.Color{0.2, 0.4, 0.6, 1}
	if err := tg.Draw(context.Background(), constShader(overlay.Fragment{Color: c}), OverlayState); err != nil {
		t.Fatal(err)
	}
	for i, v := range tg.Color {
		if v != c {
			t.Fatalf("Pixel %d expected to be %v, got %v", i, c, v)
		}
	}
}

func TestDrawPixelCoordinates(t *testing.T) {
	const w, h = 4, 2
	tg := NewTarget(w, h)
	s := overlay.ShaderFunc(func(px overlay.Pixel) (overlay.Fragment, bool) {
		return overlay.Fragment{Color: overlay.Color{px.NDC[0], px.NDC[1], px.Step[0], px.Step[1]}}, true
	})
	if err := tg.Draw(context.Background(), s, State{}); err != nil {
		t.Fatal(err)
	}

	testCases := map[string]struct {
		x, y     int
		expected overlay.Color
	}{
		"TopLeft":     {0, 0, overlay.Color{-0.75, 0.5, 0.5, 1}},
		"BottomRight": {3, 1, overlay.Color{0.75, -0.5, 0.5, 1}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			// Negative channels are clamped on write.
			if c := tg.At(tt.x, tt.y); !colorNear(c, tt.expected.Clamp(), 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected.Clamp(), c)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	red := overlay.Color{1, 0, 0, 0.5}
	blue := overlay.Color{0, 0, 1, 1}

	testCases := map[string]struct {
		state         State
		fragment      overlay.Fragment
		expected      overlay.Color
		expectedDepth float32
	}{
		"Blend": {
			state:         OverlayState,
			fragment:      overlay.Fragment{Color: red},
			expected:      overlay.Color{0.5, 0, 0.5, 0.75},
			expectedDepth: 0.5,
		},
		"Replace": {
			state:         OpaqueState,
			fragment:      overlay.Fragment{Color: red},
			expected:      red,
			expectedDepth: 0.5,
		},
		"DepthPass": {
			state:         OpaqueState,
			fragment:      overlay.Fragment{Color: red, Depth: 0.3, WritesDepth: true},
			expected:      red,
			expectedDepth: 0.3,
		},
		"DepthEqual": {
			state:         OpaqueState,
			fragment:      overlay.Fragment{Color: red, Depth: 0.5, WritesDepth: true},
			expected:      red,
			expectedDepth: 0.5,
		},
		"DepthFail": {
			state:         OpaqueState,
			fragment:      overlay.Fragment{Color: red, Depth: 0.6, WritesDepth: true},
			expected:      blue,
			expectedDepth: 0.5,
		},
		"NoDepthTest": {
			state:         State{DepthWrite: true},
			fragment:      overlay.Fragment{Color: red, Depth: 0.6, WritesDepth: true},
			expected:      red,
			expectedDepth: 0.6,
		},
		"NoDepthWrite": {
			state:         State{DepthTest: true},
			fragment:      overlay.Fragment{Color: red, Depth: 0.3, WritesDepth: true},
			expected:      red,
			expectedDepth: 0.5,
		},
		"ClampOverflow": {
			state:         OpaqueState,
			fragment:      overlay.Fragment{Color: overlay.Color{2, -1, 0.5, 3}},
			expected:      overlay.Color{1, 0, 0.5, 1},
			expectedDepth: 0.5,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			tg := NewTarget(1, 1)
			tg.Clear(blue, 0.5)
			tg.write(0, 0, tt.fragment, tt.state)
			if c := tg.At(0, 0); !colorNear(c, tt.expected, 1e-6) {
				t.Errorf("Color expected to be %v, got %v", tt.expected, c)
			}
			if d := tg.DepthAt(0, 0); d != tt.expectedDepth {
				t.Errorf("Depth expected to be %f, got %f", tt.expectedDepth, d)
			}
		})
	}
}

func TestDrawDiscard(t *testing.T) {
	tg := NewTarget(10, 10)
	bg := overlay.Color{0.1, 0.2, 0.3, 1}
	tg.Clear(bg, 1)

	s := overlay.ShaderFunc(func(px overlay.Pixel) (overlay.Fragment, bool) {
		return overlay.Fragment{Color: overlay.Color{1, 1, 1, 1}}, px.NDC[0] < 0
	})
	if err := tg.Draw(context.Background(), s, OverlayState); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 10; y++ {
		if c := tg.At(2, y); c != (overlay.Color{1, 1, 1, 1}) {
			t.Errorf("Left half expected to be drawn, got %v", c)
		}
		if c := tg.At(7, y); c != bg {
			t.Errorf("Right half expected to be untouched, got %v", c)
		}
	}
}

func TestDrawCanceled(t *testing.T) {
	tg := NewTarget(10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tg.Draw(ctx, constShader(overlay.Fragment{Color: overlay.Color{1, 1, 1, 1}}), OverlayState)
	if err != context.Canceled {
		t.Errorf("Expected %v, got %v", context.Canceled, err)
	}
}

func TestDrawDeterministic(t *testing.T) {
	s := overlay.ShaderFunc(func(px overlay.Pixel) (overlay.Fragment, bool) {
		return overlay.Fragment{
			Color:       overlay.Color{px.NDC[0] * px.NDC[0], px.NDC[1], 0.5, 0.7},
			Depth:       px.NDC.Add(mat.Vec2{1, 1}).Mul(0.25)[0],
			WritesDepth: true,
		}, true
	})
	draw := func() *Target {
		tg := NewTarget(64, 48)
		tg.Clear(overlay.Color{0, 0, 0, 1}, 1)
		for i := 0; i < 3; i++ {
			if err := tg.Draw(context.Background(), s, OverlayState); err != nil {
				t.Fatal(err)
			}
		}
		return tg
	}
	a, b := draw(), draw()
	for i := range a.Color {
		if a.Color[i] != b.Color[i] || a.Depth[i] != b.Depth[i] {
			t.Fatalf("Pixel %d differs between draws", i)
		}
	}
}

func TestImage(t *testing.T) {
	tg := NewTarget(2, 1)
	tg.Color[0] = overlay.Color{1, 0.5, 0, 1}
	tg.Color[1] = overlay.Color{0, 0, 1.5, 0.2}

	img := tg.Image()
	if c := img.NRGBAAt(0, 0); c.R != 0xFF || c.G != 0x80 || c.B != 0 || c.A != 0xFF {
		t.Errorf("Unexpected color %v", c)
	}
	if c := img.NRGBAAt(1, 0); c.B != 0xFF || c.A != 0x33 {
		t.Errorf("Unexpected color %v", c)
	}
}

func TestWriteReversed(t *testing.T) {
	red := overlay.Color{1, 0, 0, 1}
	blue := overlay.Color{0, 0, 1, 1}
	testCases := map[string]struct {
		depth         float32
		expected      overlay.Color
		expectedDepth float32
	}{
		"Closer":  {depth: 0.7, expected: red, expectedDepth: 0.7},
		"Equal":   {depth: 0.5, expected: red, expectedDepth: 0.5},
		"Farther": {depth: 0.3, expected: blue, expectedDepth: 0.5},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			tg := NewTarget(1, 1)
			tg.Reversed = true
			tg.Clear(blue, 0.5)
			tg.write(0, 0, overlay.Fragment{Color: red, Depth: tt.depth, WritesDepth: true}, OpaqueState)
			if c := tg.At(0, 0); c != tt.expected {
				t.Errorf("Color expected to be %v, got %v", tt.expected, c)
			}
			if d := tg.DepthAt(0, 0); d != tt.expectedDepth {
				t.Errorf("Depth expected to be %f, got %f", tt.expectedDepth, d)
			}
		})
	}
}
