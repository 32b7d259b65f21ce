// Package texture implements the 2-D nearest-pixel RGB(+alpha) sampler
// used by every textured interaction variant. Loading PPM/PFM files into
// a Texture is handled by the internal/imgio collaborator; this package
// only owns the in-memory representation and evaluation, grounded on the
// teacher's pkg/material/image_texture.go Evaluate method.
package texture

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Texture is a row-major RGB image with an optional per-pixel alpha
// channel. Width and Height must both be positive for a non-nil Texture.
type Texture struct {
	Width, Height int
	RGB           []vec3.Vec3 // len == Width*Height, row 0 is the top row
	Alpha         []float64   // len == Width*Height, or nil if no alpha channel
}

// New creates a Texture from pre-decoded RGB pixels, with no alpha channel.
func New(width, height int, rgb []vec3.Vec3) *Texture {
	return &Texture{Width: width, Height: height, RGB: rgb}
}

// HasAlpha reports whether the texture carries an alpha channel.
func (t *Texture) HasAlpha() bool {
	return t != nil && t.Alpha != nil
}

// wrapToPixel maps a coordinate to [0,1) using u - floor(u), then converts
// to a clamped pixel index in [0, size).
func wrapToPixel(u float64, size int) int {
	frac := u - math.Floor(u)
	idx := int(frac * float64(size))
	if idx >= size {
		idx = size - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (t *Texture) pixelIndex(uv vec3.Vec2) int {
	x := wrapToPixel(uv.X, t.Width)
	y := wrapToPixel(uv.Y, t.Height)
	return y*t.Width + x
}

// Eval fetches the nearest-pixel RGB value at uv, wrapping both
// coordinates.
func (t *Texture) Eval(uv vec3.Vec2) vec3.Vec3 {
	if t == nil || len(t.RGB) == 0 {
		return vec3.Vec3{}
	}
	return t.RGB[t.pixelIndex(uv)]
}

// EvalAlpha fetches the nearest-pixel alpha value at uv, or 1 if the
// texture has no alpha channel.
func (t *Texture) EvalAlpha(uv vec3.Vec2) float64 {
	if t == nil {
		return 1
	}
	if t.Alpha == nil {
		return 1
	}
	return t.Alpha[t.pixelIndex(uv)]
}
