package geometry

import "github.com/tholcomb/raydiant/pkg/vec3"

// SurfaceInteraction is the point + shading frame + texture coordinates
// computed when a ray hits a surface (spec §3, §4.8). GeomNormal is the
// normalized face geometric normal, used for the front/back-face tests
// interaction variants need; Normal is the (normalized) interpolated
// shading normal used for shading calculations.
type SurfaceInteraction struct {
	Point      vec3.Vec3
	Normal     vec3.Vec3 // shading normal, normalized
	GeomNormal vec3.Vec3 // geometric (face) normal, normalized
	Basis      vec3.Basis
	UV         vec3.Vec2
	Distance   float64 // ray parameter t at the hit

	ObjectIdx int // owning object, or -1 for a miss/environment-only interaction
	FaceIdx   int
}

// NewSurfaceInteraction builds the tangent basis from the shading normal
// and fills in the remaining fields.
func NewSurfaceInteraction(point, normal, geomNormal vec3.Vec3, uv vec3.Vec2, distance float64, objectIdx, faceIdx int) SurfaceInteraction {
	return SurfaceInteraction{
		Point:      point,
		Normal:     normal,
		GeomNormal: geomNormal,
		Basis:      vec3.NewBasis(normal),
		UV:         uv,
		Distance:   distance,
		ObjectIdx:  objectIdx,
		FaceIdx:    faceIdx,
	}
}
