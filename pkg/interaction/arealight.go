package interaction

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// NewAreaLight builds an Interaction of KindAreaLight, precomputing the
// area-proportional triangle selection distribution (spec §4.4.6:
// "sample a triangle proportional to area").
func NewAreaLight(tris []geometry.Triangle, ke vec3.Vec3) *Interaction {
	dist := sampler.NewDiscrete1D()
	total := 0.0
	for i := range tris {
		area := triangleArea(tris[i])
		dist.Add(area)
		total += area
	}
	dist.Normalize()

	return &Interaction{
		Kind:      KindAreaLight,
		Ke:        ke,
		Triangles: tris,
		AreaDist:  dist,
		TotalArea: total,
	}
}

func triangleArea(tri geometry.Triangle) float64 {
	return 0.5 * tri.E1.Cross(tri.E2).Length()
}

// trianglePoint maps uniform (u, v) in [0,1)^2 to a uniform point inside
// the triangle using the (1-sqrt(u), v*sqrt(u)) barycentric mapping
// (spec §4.4.6).
func trianglePoint(tri geometry.Triangle, u, v float64) vec3.Vec3 {
	su := math.Sqrt(u)
	b0 := 1 - su
	b1 := v * su
	return tri.P0.Add(tri.E1.Mul(b1)).Add(tri.E2.Mul(1 - b0 - b1))
}

// geometryTerm is the unoccluded geometry term G(sp, emitter_sp) = |cos
// θ1 · cos θ2| / d², where θ1 is measured at the shading point against
// its own normal and θ2 at the emitter point against the emitter's
// (geometric) normal (spec §4.4.6).
func geometryTerm(shadingNormal, emitterNormal, wo vec3.Vec3, dist float64) float64 {
	if dist <= 0 {
		return 0
	}
	cos1 := shadingNormal.Dot(wo)
	cos2 := emitterNormal.Dot(wo.Neg())
	return math.Abs(cos1*cos2) / (dist * dist)
}

// SampleLight picks a point/direction on the emitter and returns a
// solid-angle-measure sample at the given shading surface, or ok=false
// if the shading point cannot see the emitter at all (e.g. its back
// face, or a degenerate light).
func (ia *Interaction) SampleLight(rng *sampler.Sampler, shadingSurface geometry.SurfaceInteraction) (LightSampleResult, bool) {
	switch ia.Kind {
	case KindAreaLight:
		return ia.sampleAreaLight(rng, shadingSurface)
	case KindEnvLight:
		return ia.sampleEnvLight(rng, shadingSurface)
	default:
		return LightSampleResult{}, false
	}
}

func (ia *Interaction) sampleAreaLight(rng *sampler.Sampler, shadingSurface geometry.SurfaceInteraction) (LightSampleResult, bool) {
	if len(ia.Triangles) == 0 || ia.TotalArea <= 0 {
		return LightSampleResult{}, false
	}

	uSelect := rng.U()
	triIdx := ia.AreaDist.Sample(uSelect)
	tri := ia.Triangles[triIdx]

	u, v := rng.U2()
	point := trianglePoint(tri, u, v)

	toLight := point.Sub(shadingSurface.Point)
	dist := toLight.Length()
	if dist <= 0 {
		return LightSampleResult{}, false
	}
	wo := toLight.Mul(1 / dist)

	// The shading point sees the emitter's back face when the emitter's
	// geometric normal points away from it; no light arrives from that side.
	if tri.GeomNormal.Dot(wo) >= 0 {
		return LightSampleResult{}, false
	}

	g := geometryTerm(shadingSurface.Normal, tri.GeomNormal, wo, dist)
	if g <= 0 {
		// The shading point is edge-on to the emitter (or vice versa).
		return LightSampleResult{}, false
	}

	pdfArea := ia.AreaDist.PMF(triIdx) / triangleArea(tri)
	pdf := pdfArea / g

	return LightSampleResult{
		Wo:       wo,
		Distance: dist,
		Le:       ia.Ke,
		PDF:      pdf,
	}, true
}

// PDFLight returns the solid-angle density SampleLight would assign to
// sampling the given emitter surface point from shadingSurface.
func (ia *Interaction) PDFLight(shadingSurface, emitterSurface geometry.SurfaceInteraction, wo vec3.Vec3) float64 {
	switch ia.Kind {
	case KindAreaLight:
		return ia.pdfAreaLight(shadingSurface, emitterSurface, wo)
	case KindEnvLight:
		return ia.pdfEnvLight(shadingSurface.Normal, wo)
	default:
		return 0
	}
}

func (ia *Interaction) pdfAreaLight(shadingSurface, emitterSurface geometry.SurfaceInteraction, wo vec3.Vec3) float64 {
	if ia.TotalArea <= 0 || emitterSurface.FaceIdx < 0 || emitterSurface.FaceIdx >= len(ia.Triangles) {
		return 0
	}
	tri := ia.Triangles[emitterSurface.FaceIdx]

	dist := emitterSurface.Point.Sub(shadingSurface.Point).Length()
	g := geometryTerm(shadingSurface.Normal, tri.GeomNormal, wo, dist)
	if g <= 0 {
		return 0
	}

	area := triangleArea(tri)
	pdfArea := ia.AreaDist.PMF(emitterSurface.FaceIdx) / area
	return pdfArea / g
}

// Emit returns the emitted radiance looking back along wo from the
// emitter surface, zero unless the outward-facing side is visible (spec
// §4.4.6: "Ke when wo·n > 0, else zero").
func (ia *Interaction) Emit(n, wo vec3.Vec3) vec3.Vec3 {
	if wo.Dot(n) > 0 {
		return ia.Ke
	}
	return vec3.Vec3{}
}
