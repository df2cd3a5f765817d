package overlay

import (
	"github.com/seqsense/pcdoverlay/texture"
)

// Blit draws a texture stretched over the whole target.
type Blit struct {
	Texture *texture.Texture
	Opacity float32
}

func (b Blit) Shade(px Pixel) (Fragment, bool) {
	c := Color(b.Texture.Sample((px.NDC[0]+1)/2, (px.NDC[1]+1)/2))
	c[3] *= b.Opacity
	return Fragment{Color: c}, true
}
