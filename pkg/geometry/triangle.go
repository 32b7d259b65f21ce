package geometry

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/bounds"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// degenerateDet is the Möller-Trumbore determinant-magnitude threshold
// below which a ray is considered parallel to the triangle's plane.
const degenerateDet = 1e-8

// Triangle is the primitive the BVH is built over. It owns a copy of its
// world-space vertex positions (P0, and the two edges from P0) so
// intersection tests don't chase through Arena/Face indirection on the
// hot path, plus enough bookkeeping to map a hit back to the owning
// object's attribute data.
type Triangle struct {
	P0, E1, E2 vec3.Vec3 // P0 = first vertex, E1 = v1-v0, E2 = v2-v0
	GeomNormal vec3.Vec3
	BBox       bounds.Bounds
	Centroid   vec3.Vec3
	ObjectIdx  int // index into Scene.Objects
	FaceIdx    int // index of this face within the owning object's Faces slice
}

// NewTriangle builds a Triangle from three world-space vertex positions.
func NewTriangle(p0, p1, p2 vec3.Vec3, objectIdx, faceIdx int) Triangle {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	n := e1.Cross(e2).Normalize()

	bb := bounds.Empty().UnionPoint(p0).UnionPoint(p1).UnionPoint(p2)

	return Triangle{
		P0: p0, E1: e1, E2: e2,
		GeomNormal: n,
		BBox:       bb,
		Centroid:   bb.Centroid(),
		ObjectIdx:  objectIdx,
		FaceIdx:    faceIdx,
	}
}

// Intersect implements the Möller-Trumbore ray-triangle test. It rejects
// determinants with |det| < 1e-8 and barycentrics outside the simplex,
// and returns the hit distance t plus barycentric (u, v) with u+v <= 1.
func (tri *Triangle) Intersect(origin, direction vec3.Vec3, tMin, tMax float64) (t, u, v float64, hit bool) {
	pvec := direction.Cross(tri.E2)
	det := tri.E1.Dot(pvec)
	if math.Abs(det) < degenerateDet {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	tvec := origin.Sub(tri.P0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(tri.E1)
	v = direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = tri.E2.Dot(qvec) * invDet
	if t < tMin || t > tMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
