// Package imgio reads the texture and image formats spec §6
// names as external collaborators: binary PPM (P6, 8-bit) and PFM
// (32-bit float). Grounded on the teacher's pkg/loaders/image.go
// ImageData{Width, Height, Pixels} shape and open/decode/convert
// sequence, hand-rolled here because image.Decode only understands
// PNG/JPEG and can't express either P6's header-scale gamma convention
// or PFM's float payload.
package imgio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Image is a decoded width x height RGB buffer with an optional
// per-pixel alpha channel (spec §3 Texture: "row-major RGB floats,
// optional alpha floats").
type Image struct {
	Width  int
	Height int
	Pixels []vec3.Vec3
	Alpha  []float64 // nil if no alpha channel was loaded
}

// readPPMToken reads the next whitespace-delimited token from r,
// skipping '#' comment lines, per the PPM header grammar.
func readPPMToken(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			if _, err := r.ReadString('\n'); err != nil {
				return "", err
			}
			continue
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

// LoadPPM reads a binary P6 PPM image and converts its 8-bit samples to
// linear radiance by gamma 2.2, normalizing against the header's maxval
// field as the inverse exposure scale (spec §6: "converted to linear by
// gamma 2.2 using the header scale as the inverse exposure"). If a file
// named "<stem>_alpha.ppm" exists alongside path, its red channel is
// loaded as a per-pixel alpha mask.
func LoadPPM(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ppm %q: %w", path, err)
	}
	defer file.Close()

	img, err := decodePPM(file)
	if err != nil {
		return nil, fmt.Errorf("decode ppm %q: %w", path, err)
	}

	stem := strings.TrimSuffix(path, ".ppm")
	alphaPath := stem + "_alpha.ppm"
	if alphaFile, aerr := os.Open(alphaPath); aerr == nil {
		defer alphaFile.Close()
		alphaImg, derr := decodePPM(alphaFile)
		if derr != nil {
			return nil, fmt.Errorf("decode alpha ppm %q: %w", alphaPath, derr)
		}
		if alphaImg.Width != img.Width || alphaImg.Height != img.Height {
			return nil, fmt.Errorf("alpha ppm %q size %dx%d does not match %q size %dx%d",
				alphaPath, alphaImg.Width, alphaImg.Height, path, img.Width, img.Height)
		}
		alpha := make([]float64, len(alphaImg.Pixels))
		for i, p := range alphaImg.Pixels {
			alpha[i] = p.X
		}
		img.Alpha = alpha
	}

	return img, nil
}

func decodePPM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readPPMToken(br)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("unsupported ppm magic %q, only P6 is supported", magic)
	}

	widthTok, err := readPPMToken(br)
	if err != nil {
		return nil, fmt.Errorf("read width: %w", err)
	}
	heightTok, err := readPPMToken(br)
	if err != nil {
		return nil, fmt.Errorf("read height: %w", err)
	}
	maxvalTok, err := readPPMToken(br)
	if err != nil {
		return nil, fmt.Errorf("read maxval: %w", err)
	}

	width, err := strconv.Atoi(widthTok)
	if err != nil {
		return nil, fmt.Errorf("malformed width %q: %w", widthTok, err)
	}
	height, err := strconv.Atoi(heightTok)
	if err != nil {
		return nil, fmt.Errorf("malformed height %q: %w", heightTok, err)
	}
	maxval, err := strconv.Atoi(maxvalTok)
	if err != nil || maxval <= 0 {
		return nil, fmt.Errorf("malformed maxval %q", maxvalTok)
	}

	raw := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("read pixel data: %w", err)
	}

	scale := 1.0 / float64(maxval)
	pixels := make([]vec3.Vec3, width*height)
	for i := 0; i < width*height; i++ {
		r := math.Pow(float64(raw[i*3+0])*scale, 2.2)
		g := math.Pow(float64(raw[i*3+1])*scale, 2.2)
		b := math.Pow(float64(raw[i*3+2])*scale, 2.2)
		pixels[i] = vec3.New(r, g, b)
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}
