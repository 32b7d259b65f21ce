package interaction

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// albedo returns Kd, or the texture lookup at the surface's uv if a
// texture is present (spec §4.4.1 Eval: "(Kd or texture(uv))").
func (ia *Interaction) albedo(surface geometry.SurfaceInteraction) vec3.Vec3 {
	if ia.Tex != nil {
		return ia.Tex.Eval(surface.UV)
	}
	return ia.Kd
}

// alpha returns the texture's alpha at uv, or 1 if there is no alpha
// channel (spec §4.4.1 Eval: "alpha is texture alpha if present else 1").
func (ia *Interaction) alpha(surface geometry.SurfaceInteraction) float64 {
	if ia.Tex != nil {
		return ia.Tex.EvalAlpha(surface.UV)
	}
	return 1
}

// Albedo exposes albedo for component-selection weighting (spec §4.5's
// "wd = max(Kd or tex(uv))").
func (ia *Interaction) Albedo(surface geometry.SurfaceInteraction) vec3.Vec3 {
	return ia.albedo(surface)
}

// HasAlphaMask reports whether this Diffuse component carries a texture
// with an alpha channel (spec §4.5's alpha-based TransparentMask switch).
func (ia *Interaction) HasAlphaMask() bool {
	return ia.Tex.HasAlpha()
}

// AlphaAt exposes alpha for component-selection's stochastic alpha test.
func (ia *Interaction) AlphaAt(surface geometry.SurfaceInteraction) float64 {
	return ia.alpha(surface)
}

// sampleDiffuse draws a cosine-weighted direction in the hemisphere
// oriented toward wi, i.e. the hemisphere the incident direction came
// from (spec §4.4.1).
func (ia *Interaction) sampleDiffuse(rng *sampler.Sampler, surface geometry.SurfaceInteraction, wi vec3.Vec3) (SampleResult, bool) {
	n := surface.Normal
	if n.Dot(wi) < 0 {
		n = n.Neg()
	}
	basis := vec3.NewBasis(n)
	local := rng.CosineHemisphere()
	wo := basis.ToWorld(local)

	pdf := sampler.CosineHemispherePDF(local.Z)
	if pdf <= 0 {
		return SampleResult{}, false
	}

	f := ia.evalDiffuse(surface, wi, wo)
	cosTheta := math.Abs(wo.Dot(surface.Normal))
	weight := f.Mul(cosTheta / pdf)

	return SampleResult{Ray: vec3.NewRay(surface.Point, wo), Weight: weight}, true
}

// evalDiffuse is f(wi,wo) = albedo*alpha/pi, zero when wi and wo are on
// opposite sides of the geometric normal (spec §4.4 Eval contract).
func (ia *Interaction) evalDiffuse(surface geometry.SurfaceInteraction, wi, wo vec3.Vec3) vec3.Vec3 {
	if sidesOppose(wi, wo, surface.GeomNormal) {
		return vec3.Vec3{}
	}
	a := ia.alpha(surface)
	return ia.albedo(surface).Mul(a / math.Pi)
}

// pdfDiffuse is cos(theta_o)/pi relative to the hemisphere oriented
// toward wi, or 0 if wo falls outside it.
func (ia *Interaction) pdfDiffuse(surface geometry.SurfaceInteraction, wi, wo vec3.Vec3) float64 {
	n := surface.Normal
	if n.Dot(wi) < 0 {
		n = n.Neg()
	}
	cosTheta := wo.Dot(n)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}
