// Package config parses the 19 fixed positional command-line arguments
// spec §6 defines. Grounded on the teacher's own hand-built Config
// struct (pkg/renderer's ProgressiveConfig/SamplingConfig field-by-field
// construction), adapted from named struct-literal fields to
// strconv-parsed os.Args slots since the spec's CLI surface is
// positional, not flag-based — github.com/spf13/cobra (the corpus's
// flag library, used for named subcommands/flags elsewhere in the
// retrieval pack) doesn't fit a fixed positional-argument shape.
package config

import (
	"fmt"
	"strconv"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// argCount is the number of positional arguments spec §6 specifies,
// not counting argv[0].
const argCount = 19

// Config is the fully parsed command-line configuration.
type Config struct {
	OBJPath           string
	EnvMapPath        string // empty: no environment light
	LensPath          string // empty: pinhole camera
	OutputPath        string
	SamplesPerPixel   int
	MaxPathLength     int
	EnvMapRotationDeg float64
	Width             int
	Height            int
	Eye               vec3.Vec3
	LookAt            vec3.Vec3
	VFovDegrees       float64
	FocusDistance     float64 // realistic lens only
	SensorDiagonalMM  float64 // realistic lens only
	Sensitivity       float64 // realistic lens only
}

// HasEnvMap reports whether an environment map path was supplied.
func (c Config) HasEnvMap() bool {
	return c.EnvMapPath != ""
}

// HasLens reports whether a lens prescription file was supplied; if
// false, the camera falls back to a pinhole (spec §6 pos 3).
func (c Config) HasLens() bool {
	return c.LensPath != ""
}

// Parse reads the argCount positional arguments in args (conventionally
// os.Args[1:]) into a Config.
func Parse(args []string) (Config, error) {
	if len(args) != argCount {
		return Config{}, fmt.Errorf("expected %d positional arguments, got %d", argCount, len(args))
	}

	ints := make(map[int]int)
	for _, idx := range []int{5, 6, 8, 9} {
		v, err := strconv.Atoi(args[idx-1])
		if err != nil {
			return Config{}, fmt.Errorf("argument %d: malformed integer %q: %w", idx, args[idx-1], err)
		}
		ints[idx] = v
	}

	floatIdxs := []int{7, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	floats := make(map[int]float64)
	for _, idx := range floatIdxs {
		v, err := strconv.ParseFloat(args[idx-1], 64)
		if err != nil {
			return Config{}, fmt.Errorf("argument %d: malformed number %q: %w", idx, args[idx-1], err)
		}
		floats[idx] = v
	}

	return Config{
		OBJPath:           args[0],
		EnvMapPath:        args[1],
		LensPath:          args[2],
		OutputPath:        args[3],
		SamplesPerPixel:   ints[5],
		MaxPathLength:     ints[6],
		EnvMapRotationDeg: floats[7],
		Width:             ints[8],
		Height:            ints[9],
		Eye:               vec3.New(floats[10], floats[11], floats[12]),
		LookAt:            vec3.New(floats[13], floats[14], floats[15]),
		VFovDegrees:       floats[16],
		FocusDistance:     floats[17],
		SensorDiagonalMM:  floats[18],
		Sensitivity:       floats[19],
	}, nil
}
