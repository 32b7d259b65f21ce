package imgio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// LoadPFM reads a binary PF (3-channel) float image (spec §6: "Scale
// value is a double on the header line. Negative scale means
// little-endian floats; positive means big-endian and each 4-byte word
// must be byte-swapped on load. PFM pixel rows are stored bottom-up;
// the loader compensates by flipping vertically.").
func LoadPFM(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pfm %q: %w", path, err)
	}
	defer file.Close()

	br := bufio.NewReader(file)

	magic, err := readPFMLine(br)
	if err != nil {
		return nil, fmt.Errorf("read pfm magic: %w", err)
	}
	if magic != "PF" {
		return nil, fmt.Errorf("unsupported pfm magic %q, only PF (3-channel) is supported", magic)
	}

	dims, err := readPFMLine(br)
	if err != nil {
		return nil, fmt.Errorf("read pfm dimensions: %w", err)
	}
	fields := strings.Fields(dims)
	if len(fields) != 2 {
		return nil, fmt.Errorf("malformed pfm dimensions line %q", dims)
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("malformed pfm width %q: %w", fields[0], err)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("malformed pfm height %q: %w", fields[1], err)
	}

	scaleLine, err := readPFMLine(br)
	if err != nil {
		return nil, fmt.Errorf("read pfm scale: %w", err)
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(scaleLine), 64)
	if err != nil {
		return nil, fmt.Errorf("malformed pfm scale %q: %w", scaleLine, err)
	}
	littleEndian := scale < 0

	raw := make([]byte, width*height*3*4)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("read pfm pixel data: %w", err)
	}

	pixels := make([]vec3.Vec3, width*height)
	for y := 0; y < height; y++ {
		// Rows are stored bottom-up; flip so row 0 of Pixels is the top
		// of the image.
		dstRow := height - 1 - y
		for x := 0; x < width; x++ {
			base := (y*width + x) * 3 * 4
			r := decodeFloat32(raw[base:base+4], littleEndian)
			g := decodeFloat32(raw[base+4:base+8], littleEndian)
			b := decodeFloat32(raw[base+8:base+12], littleEndian)
			pixels[dstRow*width+x] = vec3.New(float64(r), float64(g), float64(b))
		}
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

func decodeFloat32(b []byte, littleEndian bool) float32 {
	var bits uint32
	if littleEndian {
		bits = binary.LittleEndian.Uint32(b)
	} else {
		bits = binary.BigEndian.Uint32(b)
	}
	return math.Float32frombits(bits)
}

// readPFMLine reads a single newline-terminated header line, trimming
// the trailing newline.
func readPFMLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
