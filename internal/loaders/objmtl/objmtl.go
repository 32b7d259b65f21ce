// Package objmtl reads the Wavefront OBJ/MTL subset spec §6 specifies
// into the spec's index-into-shared-arena object model: v/vn/vt/f plus
// usemtl/mtllib, MTL keys Kd/Ks/Ni/Ns/aniso/Ke/illum/map_Kd. Grounded on
// the teacher's pkg/loaders/pbrt.go line-oriented, field-driven parsing
// idiom (bufio.Scanner over statement keywords, per-statement field
// parsing into a shared accumulator) though the PBRT grammar itself
// doesn't apply; this package also reuses the teacher's GraphicsState
// "current value carried forward across lines" pattern for usemtl/
// mtllib tracking.
package objmtl

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/interaction"
	"github.com/tholcomb/raydiant/pkg/object"
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

const (
	illumMirror     = 5
	illumDielectric = 7
)

// TextureLoader resolves a map_Kd path into a decoded texture. Supplied
// by the caller (internal/cliapp, backed by internal/imgio) so this
// package stays free of a direct PPM/PFM-decoding dependency and so
// tests can substitute a stub.
type TextureLoader func(path string) (*texture.Texture, error)

type objGroup struct {
	material string
	faces    []geometry.Face
}

// Load reads objPath and every mtllib it references (resolved relative
// to objPath's directory) and returns one object.Object per usemtl
// group in the order first encountered, plus the shared vertex arena.
// loadTexture decodes a map_Kd image path into a *texture.Texture; pass
// nil to skip texture loading (diffuse components stay untextured).
func Load(objPath string, loadTexture TextureLoader) ([]*object.Object, *geometry.Arena, error) {
	file, err := os.Open(objPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open obj %q: %w", objPath, err)
	}
	defer file.Close()

	dir := filepath.Dir(objPath)
	arena := &geometry.Arena{}
	materials := make(map[string]material)

	var groups []objGroup
	groupIndex := make(map[string]int)
	currentMaterial := ""

	ensureGroup := func(name string) *objGroup {
		if idx, ok := groupIndex[name]; ok {
			return &groups[idx]
		}
		groups = append(groups, objGroup{material: name})
		groupIndex[name] = len(groups) - 1
		return &groups[len(groups)-1]
	}

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := fields[0]
		args := fields[1:]

		switch key {
		case "v":
			p, err := parseVec3(args)
			if err != nil {
				return nil, nil, fmt.Errorf("obj %q line %d: malformed v: %w", objPath, lineNo, err)
			}
			arena.AddPosition(p)
		case "vn":
			n, err := parseVec3(args)
			if err != nil {
				return nil, nil, fmt.Errorf("obj %q line %d: malformed vn: %w", objPath, lineNo, err)
			}
			arena.AddNormal(n)
		case "vt":
			if len(args) < 2 {
				return nil, nil, fmt.Errorf("obj %q line %d: malformed vt", objPath, lineNo)
			}
			u, err1 := strconv.ParseFloat(args[0], 64)
			v, err2 := strconv.ParseFloat(args[1], 64)
			if err1 != nil || err2 != nil {
				return nil, nil, fmt.Errorf("obj %q line %d: malformed vt", objPath, lineNo)
			}
			arena.AddTexCoord(vec3.NewVec2(u, v))
		case "mtllib":
			for _, arg := range args {
				mtlPath := filepath.Join(dir, arg)
				parsed, err := parseMTL(mtlPath)
				if err != nil {
					return nil, nil, fmt.Errorf("obj %q line %d: %w", objPath, lineNo, err)
				}
				for name, m := range parsed {
					materials[name] = m
				}
			}
		case "usemtl":
			currentMaterial = strings.Join(args, " ")
			ensureGroup(currentMaterial)
		case "f":
			verts := make([]geometry.VertexIndex, len(args))
			for i, tok := range args {
				vi, err := parseFaceVertex(tok, len(arena.Positions), len(arena.TexCoords), len(arena.Normals))
				if err != nil {
					return nil, nil, fmt.Errorf("obj %q line %d: %w", objPath, lineNo, err)
				}
				verts[i] = vi
			}
			if len(verts) < 3 {
				return nil, nil, fmt.Errorf("obj %q line %d: face has fewer than 3 vertices", objPath, lineNo)
			}
			group := ensureGroup(currentMaterial)
			// Fan triangulation (0,1,2)(0,2,3)... (spec §6: quads
			// triangulated this way; extended uniformly to any n-gon).
			for i := 1; i+1 < len(verts); i++ {
				group.faces = append(group.faces, geometry.Face{V: [3]geometry.VertexIndex{verts[0], verts[i], verts[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read obj %q: %w", objPath, err)
	}

	var objects []*object.Object
	for _, g := range groups {
		if len(g.faces) == 0 {
			continue
		}
		mat, ok := materials[g.material]
		if !ok {
			mat = defaultMaterial()
		}

		var components []*interaction.Interaction
		switch mat.Illum {
		case illumMirror:
			components = append(components, interaction.NewPerfectMirror())
		case illumDielectric:
			components = append(components, interaction.NewFresnelSpecular(mat.Ni))
		default:
			var tex *texture.Texture
			if mat.MapKdPath != "" && loadTexture != nil {
				tex, err = loadTexture(mat.MapKdPath)
				if err != nil {
					return nil, nil, fmt.Errorf("material %q: %w", g.material, err)
				}
			}
			components = append(components, interaction.NewDiffuse(mat.Kd, tex))
			components = append(components, interaction.NewGlossy(mat.Ks, mat.Ns, mat.Aniso))
		}

		if !mat.Ke.IsZero() {
			objIdx := len(objects)
			tris := make([]geometry.Triangle, len(g.faces))
			for i, face := range g.faces {
				p0 := arena.Positions[face.V[0].Position]
				p1 := arena.Positions[face.V[1].Position]
				p2 := arena.Positions[face.V[2].Position]
				tris[i] = geometry.NewTriangle(p0, p1, p2, objIdx, i)
			}
			components = append(components, interaction.NewAreaLight(tris, mat.Ke))
		}

		objects = append(objects, object.New(g.faces, components...))
	}

	return objects, arena, nil
}

// parseFaceVertex parses one OBJ face-vertex token of the form
// "v", "v/vt", "v//vn", or "v/vt/vn", resolving negative (relative)
// indices against the current counts and converting to 0-based.
func parseFaceVertex(tok string, numPos, numTex, numNorm int) (geometry.VertexIndex, error) {
	parts := strings.Split(tok, "/")
	vi := geometry.VertexIndex{Position: -1, TexCoord: -1, Normal: -1}

	resolve := func(s string, count int) (int, error) {
		if s == "" {
			return -1, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return -1, err
		}
		if n < 0 {
			return count + n, nil
		}
		return n - 1, nil
	}

	pos, err := resolve(parts[0], numPos)
	if err != nil {
		return vi, fmt.Errorf("malformed face vertex %q: %w", tok, err)
	}
	vi.Position = pos

	if len(parts) > 1 {
		tc, err := resolve(parts[1], numTex)
		if err != nil {
			return vi, fmt.Errorf("malformed face vertex %q: %w", tok, err)
		}
		vi.TexCoord = tc
	}
	if len(parts) > 2 {
		n, err := resolve(parts[2], numNorm)
		if err != nil {
			return vi, fmt.Errorf("malformed face vertex %q: %w", tok, err)
		}
		vi.Normal = n
	}
	return vi, nil
}
