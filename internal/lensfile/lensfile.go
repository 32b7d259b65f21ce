// Package lensfile reads the lens prescription file format spec §6
// describes: one element per non-comment, non-blank line with four
// whitespace-separated fields, scaled from millimeters to the meters
// pkg/lens.Element expects. Grounded on the teacher's line-oriented
// config parsing idiom in internal/config (itself modeled on the
// teacher's own Config struct construction), since no corpus repo reads
// a PBRT-style lens file directly.
package lensfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tholcomb/raydiant/pkg/lens"
)

// Load reads a lens prescription file and returns its elements in
// prescription order (object-side first), scaled per spec §6: "The
// implementation scales radius and thickness by 0.001 and diameter by
// 0.0005 (diameter -> radius in meters)."
func Load(path string) ([]lens.Element, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lens file %q: %w", path, err)
	}
	defer file.Close()

	var elements []lens.Element
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("lens file %q line %d: expected 4 fields, got %d", path, lineNo, len(fields))
		}

		radiusMM, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("lens file %q line %d: malformed curvature radius %q: %w", path, lineNo, fields[0], err)
		}
		thicknessMM, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("lens file %q line %d: malformed thickness %q: %w", path, lineNo, fields[1], err)
		}
		eta, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("lens file %q line %d: malformed index of refraction %q: %w", path, lineNo, fields[2], err)
		}
		apertureDiameterMM, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("lens file %q line %d: malformed aperture diameter %q: %w", path, lineNo, fields[3], err)
		}

		elements = append(elements, lens.Element{
			CurvatureRadius: radiusMM * 0.001,
			Thickness:       thicknessMM * 0.001,
			Eta:             eta,
			ApertureRadius:  apertureDiameterMM * 0.0005,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lens file %q: %w", path, err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("lens file %q contains no elements", path)
	}

	return elements, nil
}
