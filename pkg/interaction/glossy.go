package interaction

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// toLocalTriple converts a world-space direction into the local-frame
// triple GGX math operates on.
func toLocalTriple(basis vec3.Basis, w vec3.Vec3) vec3LocalTriple {
	local := basis.ToLocal(w)
	return vec3LocalTriple{x: local.X, y: local.Y, z: local.Z}
}

// sampleGlossy samples a half-vector from the anisotropic GGX
// distribution and reflects wi about it (spec §4.4.2).
func (ia *Interaction) sampleGlossy(rng *sampler.Sampler, surface geometry.SurfaceInteraction, wi vec3.Vec3) (SampleResult, bool) {
	n := surface.Normal
	if n.Dot(wi) < 0 {
		n = n.Neg()
	}
	basis := vec3.NewBasis(n)

	u1, u2 := rng.U2()
	whLocal := sampleGGXHalfVector(ia.AlphaX, ia.AlphaY, u1, u2)
	wh := basis.ToWorld(vec3.New(whLocal.x, whLocal.y, whLocal.z))

	wo := vec3.Reflect(wi, wh)
	if wo.Dot(n) <= 0 {
		return SampleResult{}, false
	}

	pdf := ggxPDF(wh, n, wo, ia.AlphaX, ia.AlphaY, whLocal)
	if pdf <= 0 {
		return SampleResult{}, false
	}

	f := ia.evalGlossy(surface, wi, wo)
	cosTheta := math.Abs(wo.Dot(surface.Normal))
	weight := f.Mul(cosTheta / pdf)

	return SampleResult{Ray: vec3.NewRay(surface.Point, wo), Weight: weight}, true
}

// evalGlossy is Ks * Fs * D * G / (4 (wi·n)(wo·n)) with the Schlick
// term evaluated at (wo·wh) (spec §4.4.2).
func (ia *Interaction) evalGlossy(surface geometry.SurfaceInteraction, wi, wo vec3.Vec3) vec3.Vec3 {
	if sidesOppose(wi, wo, surface.GeomNormal) {
		return vec3.Vec3{}
	}
	n := surface.Normal
	if n.Dot(wi) < 0 {
		n = n.Neg()
	}
	wiDotN := wi.Dot(n)
	woDotN := wo.Dot(n)
	if wiDotN <= 0 || woDotN <= 0 {
		return vec3.Vec3{}
	}

	wh := wi.Add(wo).Normalize()
	if wh.IsZero() {
		return vec3.Vec3{}
	}

	basis := vec3.NewBasis(n)
	whLocal := toLocalTriple(basis, wh)
	wiLocal := toLocalTriple(basis, wi)
	woLocal := toLocalTriple(basis, wo)

	d := ggxD(whLocal, ia.AlphaX, ia.AlphaY)
	g := ggxG(wiLocal, woLocal, ia.AlphaX, ia.AlphaY)

	woDotWh := wo.Dot(wh)
	fs := schlick(ia.Ks, woDotWh)

	denom := 4 * wiDotN * woDotN
	if denom <= 0 {
		return vec3.Vec3{}
	}

	return fs.Mul(d * g / denom)
}

// pdfGlossy mirrors sampleGlossy's half-vector density (spec §4.4.2).
func (ia *Interaction) pdfGlossy(surface geometry.SurfaceInteraction, wi, wo vec3.Vec3) float64 {
	n := surface.Normal
	if n.Dot(wi) < 0 {
		n = n.Neg()
	}
	wh := wi.Add(wo).Normalize()
	if wh.IsZero() {
		return 0
	}
	basis := vec3.NewBasis(n)
	whLocal := toLocalTriple(basis, wh)
	return ggxPDF(wh, n, wo, ia.AlphaX, ia.AlphaY, whLocal)
}

// schlick is the Schlick Fresnel approximation: Ks + (1-Ks)(1-cosTheta)^5.
func schlick(ks vec3.Vec3, cosTheta float64) vec3.Vec3 {
	c := math.Max(0, math.Min(1, cosTheta))
	pow5 := math.Pow(1-c, 5)
	one := vec3.Splat(1)
	return ks.Add(one.Sub(ks).Mul(pow5))
}
