// Package film holds the accumulated per-pixel radiance buffer and the
// bit-exact PFM writer described in spec §4.11/§6.4. Grounded on the
// teacher's pkg/renderer pixel-stats accumulation (mean radiance per
// pixel, written once at the end of a render) and pkg/loaders/image.go's
// open/encode shape, adapted to hand-rolled PFM binary output since
// image.Encode only understands PNG/JPEG.
package film

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Film is a row-major Vec3 image buffer, one radiance sample accumulator
// per pixel. Each pixel is written by exactly one worker (spec §5
// Ordering), so no synchronization is needed once the buffer is sized.
type Film struct {
	Width  int
	Height int
	pixels []vec3.Vec3
}

// New allocates a zeroed width x height film.
func New(width, height int) *Film {
	return &Film{Width: width, Height: height, pixels: make([]vec3.Vec3, width*height)}
}

// Set stores the radiance for pixel (x, y) in image coordinates (x right,
// y down, origin top-left).
func (f *Film) Set(x, y int, c vec3.Vec3) {
	f.pixels[y*f.Width+x] = c
}

// At returns the radiance stored for pixel (x, y).
func (f *Film) At(x, y int) vec3.Vec3 {
	return f.pixels[y*f.Width+x]
}

// WritePFM writes the film as a binary PF (3-channel) image to path,
// using the exact header and pixel ordering spec §6.4 requires:
// "PF\n<w> <h>\n-1\n" followed by film[(h-1-y)*w + (w-1-x)] in raster
// order, little-endian (scale -1.0).
func (f *Film) WritePFM(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pfm output %q: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := fmt.Fprintf(w, "PF\n%d %d\n-1\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("write pfm header: %w", err)
	}

	buf := make([]byte, 4)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			src := f.Width*(f.Height-1-y) + (f.Width - 1 - x)
			c := f.pixels[src]
			for _, v := range [3]float64{c.X, c.Y, c.Z} {
				binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
				if _, err := w.Write(buf); err != nil {
					return fmt.Errorf("write pfm pixel data: %w", err)
				}
			}
		}
	}
	return w.Flush()
}
