// Package geometry owns the shared vertex arenas, the per-triangle data
// the BVH is built over, and the surface interaction computed at hit
// time. Grounded on the teacher's pkg/geometry/triangle.go and
// pkg/material/interfaces.go HitRecord, restructured around the spec's
// shared-arena-plus-index model (Design Notes: "prefer index-based
// references throughout").
package geometry

import "github.com/tholcomb/raydiant/pkg/vec3"

// Arena holds the three parallel vertex buffers shared by every object in
// a scene: positions, shading normals, and texture coordinates.
type Arena struct {
	Positions []vec3.Vec3
	Normals   []vec3.Vec3
	TexCoords []vec3.Vec2
}

// AddPosition appends a position and returns its index.
func (a *Arena) AddPosition(p vec3.Vec3) int {
	a.Positions = append(a.Positions, p)
	return len(a.Positions) - 1
}

// AddNormal appends a normal and returns its index.
func (a *Arena) AddNormal(n vec3.Vec3) int {
	a.Normals = append(a.Normals, n)
	return len(a.Normals) - 1
}

// AddTexCoord appends a texture coordinate and returns its index.
func (a *Arena) AddTexCoord(uv vec3.Vec2) int {
	a.TexCoords = append(a.TexCoords, uv)
	return len(a.TexCoords) - 1
}

// VertexIndex is a (position, texcoord, normal) triple; each component is
// -1 when the corresponding attribute is absent for this vertex.
type VertexIndex struct {
	Position int
	TexCoord int
	Normal   int
}

// Face is a triangle's three vertex-index triples.
type Face struct {
	V [3]VertexIndex
}
