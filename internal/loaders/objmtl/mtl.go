package objmtl

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// material is one MTL "newmtl" block's parsed fields (spec §6: Kd, Ks,
// Ni, Ns, aniso, Ke, illum, map_Kd).
type material struct {
	Kd        vec3.Vec3
	Ks        vec3.Vec3
	Ni        float64
	Ns        float64
	Aniso     float64
	Ke        vec3.Vec3
	Illum     int
	MapKdPath string // resolved relative to the MTL file's directory, or ""
}

func defaultMaterial() material {
	return material{Kd: vec3.New(0.8, 0.8, 0.8), Ni: 1, Ns: 10}
}

// parseMTL reads one MTL file and returns its materials keyed by name.
func parseMTL(path string) (map[string]material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl %q: %w", path, err)
	}
	defer file.Close()

	dir := filepath.Dir(path)
	materials := make(map[string]material)
	var name string
	var current material

	flush := func() {
		if name != "" {
			materials[name] = current
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := fields[0]
		args := fields[1:]

		switch key {
		case "newmtl":
			flush()
			name = strings.Join(args, " ")
			current = defaultMaterial()
		case "Kd":
			current.Kd, err = parseVec3(args)
		case "Ks":
			current.Ks, err = parseVec3(args)
		case "Ke":
			current.Ke, err = parseVec3(args)
		case "Ni":
			current.Ni, err = parseFloat(args)
		case "Ns":
			current.Ns, err = parseFloat(args)
		case "aniso":
			current.Aniso, err = parseFloat(args)
		case "illum":
			var v float64
			v, err = parseFloat(args)
			current.Illum = int(v)
		case "map_Kd":
			if len(args) > 0 {
				current.MapKdPath = filepath.Join(dir, args[len(args)-1])
			}
		}
		if err != nil {
			return nil, fmt.Errorf("mtl %q: malformed %q line %q: %w", path, key, line, err)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mtl %q: %w", path, err)
	}
	return materials, nil
}

func parseVec3(fields []string) (vec3.Vec3, error) {
	if len(fields) != 3 {
		return vec3.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var v [3]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vec3.Vec3{}, err
		}
		v[i] = n
	}
	return vec3.New(v[0], v[1], v[2]), nil
}

func parseFloat(fields []string) (float64, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("expected 1 value, got %d", len(fields))
	}
	return strconv.ParseFloat(fields[0], 64)
}
