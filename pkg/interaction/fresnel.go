package interaction

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// sampleFresnelSpecular picks between perfect reflection and refraction
// through a dielectric interface with index of refraction ia.IOR, per
// spec §4.4.4.
func (ia *Interaction) sampleFresnelSpecular(rng *sampler.Sampler, surface geometry.SurfaceInteraction, wi vec3.Vec3) (SampleResult, bool) {
	n := surface.GeomNormal
	entering := wi.Dot(n) > 0

	var nFacing vec3.Vec3
	var etaI, etaT float64
	if entering {
		nFacing, etaI, etaT = n, 1.0, ia.IOR
	} else {
		nFacing, etaI, etaT = n.Neg(), ia.IOR, 1.0
	}
	eta := etaI / etaT

	wt, refracted := vec3.Refract(wi, nFacing, eta)
	if !refracted {
		// Total internal reflection: reflect with probability 1.
		wo := vec3.Reflect(wi, nFacing)
		return SampleResult{Ray: vec3.NewRay(surface.Point, wo), Weight: vec3.Splat(1)}, true
	}

	cosThetaI := wi.Dot(nFacing)
	r0 := (etaI - etaT) / (etaI + etaT)
	r0 *= r0

	// Schlick's approximation is only accurate evaluated on the
	// lower-index side (spec §4.4.4); swap in the transmitted cosine
	// when that side is the transmission side.
	var cosTheta float64
	if etaI <= etaT {
		cosTheta = cosThetaI
	} else {
		cosTheta = wt.Dot(nFacing.Neg())
	}
	f := r0 + (1-r0)*math.Pow(1-math.Max(0, math.Min(1, cosTheta)), 5)

	if rng.U() < f {
		wo := vec3.Reflect(wi, nFacing)
		return SampleResult{Ray: vec3.NewRay(surface.Point, wo), Weight: vec3.Splat(1)}, true
	}

	// Transmit: radiance is scaled by eta^2 crossing the interface.
	return SampleResult{Ray: vec3.NewRay(surface.Point, wt), Weight: vec3.Splat(eta * eta)}, true
}
