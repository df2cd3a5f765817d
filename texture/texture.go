// Package texture holds decoded images as linear float RGBA for sampling.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

var errEmptyImage = errors.New("empty image")

// Texture is an RGBA float image. Rows are stored top-down; Sample follows
// the GL convention where v = 0 is the bottom row.
type Texture struct {
	Width, Height int
	Pix           []float32
}

func New(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]float32, 4*width*height),
	}
}

// FromImage converts img to straight (non-premultiplied) RGBA in [0, 1].
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errEmptyImage
	}
	t := New(b.Dx(), b.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := 4 * (y*t.Width + x)
			t.Pix[i+0] = float32(c.R) / 0xFF
			t.Pix[i+1] = float32(c.G) / 0xFF
			t.Pix[i+2] = float32(c.B) / 0xFF
			t.Pix[i+3] = float32(c.A) / 0xFF
		}
	}
	return t, nil
}

// Load decodes an image file (PNG, JPEG or BMP).
func Load(path string) (*Texture, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}
	t, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}
	return t, nil
}

// Resize returns a copy scaled down to at most maxWidth pixels wide,
// keeping the aspect ratio. Smaller textures are returned as is.
func (t *Texture) Resize(maxWidth int) *Texture {
	if maxWidth <= 0 || t.Width <= maxWidth {
		return t
	}
	h := t.Height * maxWidth / t.Width
	if h < 1 {
		h = 1
	}
	src := t.Image()
	dst := image.NewNRGBA64(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out, _ := FromImage(dst)
	return out
}

// Image returns the texture as a 16 bit image.
func (t *Texture) Image() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := t.At(x, y)
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: to16(c[0]), G: to16(c[1]), B: to16(c[2]), A: to16(c[3]),
			})
		}
	}
	return img
}

func to16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFFFF
	}
	return uint16(v*0xFFFF + 0.5)
}

// At returns the texel at column x and row y counted from the top.
func (t *Texture) At(x, y int) [4]float32 {
	i := 4 * (y*t.Width + x)
	return [4]float32{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// Sample returns the bilinearly filtered color at (u, v).
// u wraps around (the horizontal seam of a panorama), v is clamped.
func (t *Texture) Sample(u, v float32) [4]float32 {
	x := u*float32(t.Width) - 0.5
	y := (1-v)*float32(t.Height) - 0.5

	x0f := math32.Floor(x)
	y0f := math32.Floor(y)
	fx, fy := x-x0f, y-y0f

	x0 := wrap(int(x0f), t.Width)
	x1 := wrap(int(x0f)+1, t.Width)
	y0 := clampInt(int(y0f), t.Height)
	y1 := clampInt(int(y0f)+1, t.Height)

	c00, c10 := t.At(x0, y0), t.At(x1, y0)
	c01, c11 := t.At(x0, y1), t.At(x1, y1)

	var out [4]float32
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*fx
		bottom := c01[i] + (c11[i]-c01[i])*fx
		out[i] = top + (bottom-top)*fy
	}
	return out
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampInt(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
