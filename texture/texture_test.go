package texture

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
)

func colorNear(a, b [4]float32, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d < -tol || tol < d {
			return false
		}
	}
	return true
}

// newCheckerTexture returns a 2x2 texture:
//
//	red   green
//	blue  white
func newCheckerTexture() *Texture {
	t := New(2, 2)
	copy(t.Pix, []float32{
		1, 0, 0, 1, 0, 1, 0, 1,
		0, 0, 1, 1, 1, 1, 1, 1,
	})
	return t
}

func TestSampleTexelCenters(t *testing.T) {
	tex := newCheckerTexture()
	testCases := map[string]struct {
		u, v     float32
		expected [4]float32
	}{
		"TopLeft":     {0.25, 0.75, [4]float32{1, 0, 0, 1}},
		"TopRight":    {0.75, 0.75, [4]float32{0, 1, 0, 1}},
		"BottomLeft":  {0.25, 0.25, [4]float32{0, 0, 1, 1}},
		"BottomRight": {0.75, 0.25, [4]float32{1, 1, 1, 1}},
		"TopMiddle":   {0.5, 0.75, [4]float32{0.5, 0.5, 0, 1}},
		"ClampAbove":  {0.25, 1.5, [4]float32{1, 0, 0, 1}},
		"ClampBelow":  {0.25, -0.5, [4]float32{0, 0, 1, 1}},
		"WrapRight":   {1.25, 0.75, [4]float32{1, 0, 0, 1}},
		"WrapLeft":    {-0.25, 0.75, [4]float32{0, 1, 0, 1}},
		"Seam":        {0, 0.75, [4]float32{0.5, 0.5, 0, 1}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if c := tex.Sample(tt.u, tt.v); !colorNear(c, tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	img.SetNRGBA(10, 20, color.NRGBA{R: 0xFF, A: 0xFF})
	img.SetNRGBA(12, 21, color.NRGBA{G: 0xFF, B: 0x33, A: 0x80})

	tex, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", tex.Width, tex.Height)
	}
	if c := tex.At(0, 0); !colorNear(c, [4]float32{1, 0, 0, 1}, 1e-6) {
		t.Errorf("Unexpected color %v", c)
	}
	if c := tex.At(2, 1); !colorNear(c, [4]float32{0, 1, 0.2, float32(0x80) / 0xFF}, 1e-6) {
		t.Errorf("Unexpected color %v", c)
	}

	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 5))); err != errEmptyImage {
		t.Errorf("Expected %v, got %v", errEmptyImage, err)
	}
}

func TestLoad(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 0xFF, A: 0xFF})
		img.SetNRGBA(x, 1, color.NRGBA{B: 0xFF, A: 0xFF})
	}
	path := filepath.Join(t.TempDir(), "env.png")
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		t.Fatal(err)
	}

	tex, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Top row of the file is v = 1.
	if c := tex.Sample(0.5, 0.9); !colorNear(c, [4]float32{1, 0, 0, 1}, 1e-6) {
		t.Errorf("Expected red at the top, got %v", c)
	}
	if c := tex.Sample(0.5, 0.1); !colorNear(c, [4]float32{0, 0, 1, 1}, 1e-6) {
		t.Errorf("Expected blue at the bottom, got %v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestResize(t *testing.T) {
	tex := New(64, 32)
	for i := 0; i < len(tex.Pix); i += 4 {
		copy(tex.Pix[i:], []float32{0.5, 0.25, 1, 1})
	}

	small := tex.Resize(16)
	if small.Width != 16 || small.Height != 8 {
		t.Fatalf("Expected 16x8, got %dx%d", small.Width, small.Height)
	}
	if c := small.At(7, 3); !colorNear(c, [4]float32{0.5, 0.25, 1, 1}, 1.0/255) {
		t.Errorf("Uniform color must be kept, got %v", c)
	}

	if same := tex.Resize(128); same != tex {
		t.Error("Texture smaller than the limit must be returned as is")
	}
}
