package imgio

import "github.com/tholcomb/raydiant/pkg/texture"

// ToTexture adapts a decoded Image into the pkg/texture representation
// the rest of the tracer samples from.
func (img *Image) ToTexture() *texture.Texture {
	t := texture.New(img.Width, img.Height, img.Pixels)
	t.Alpha = img.Alpha
	return t
}
