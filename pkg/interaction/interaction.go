// Package interaction implements the tagged union of material, emitter,
// and camera "components" a path vertex can carry: Diffuse, Glossy
// (anisotropic GGX), TransparentMask, FresnelSpecular, PerfectMirror,
// AreaLight, EnvLight, Pinhole, and RealisticLens. Each variant exposes
// only the subset of {Sample, Eval, PDF, SampleLight, PDFLight} that makes
// sense for it; callers switch on Kind rather than going through dynamic
// dispatch, following the teacher's concrete Lambertian/Metal/Dielectric
// material split (pkg/material/*.go) generalized into one sum type instead
// of several interface implementers.
package interaction

import (
	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Kind identifies which component an Interaction represents.
type Kind int

const (
	KindPinhole Kind = iota
	KindRealisticLens
	KindAreaLight
	KindEnvLight
	KindDiffuse
	KindGlossy
	KindTransparentMask
	KindFresnelSpecular
	KindPerfectMirror
)

func (k Kind) String() string {
	switch k {
	case KindPinhole:
		return "Pinhole"
	case KindRealisticLens:
		return "RealisticLens"
	case KindAreaLight:
		return "AreaLight"
	case KindEnvLight:
		return "EnvLight"
	case KindDiffuse:
		return "Diffuse"
	case KindGlossy:
		return "Glossy"
	case KindTransparentMask:
		return "TransparentMask"
	case KindFresnelSpecular:
		return "FresnelSpecular"
	case KindPerfectMirror:
		return "PerfectMirror"
	default:
		return "Unknown"
	}
}

// Specular reports whether this kind has a Dirac-delta sample distribution
// (no meaningful PDF; the integrator must not attempt NEE against it and
// must treat its BSDF sample as exact rather than MIS-weighted).
func (k Kind) Specular() bool {
	switch k {
	case KindFresnelSpecular, KindPerfectMirror, KindTransparentMask:
		return true
	default:
		return false
	}
}

// IsEmitter reports whether this kind is sampled as a light (has
// SampleLight/PDFLight/emitted radiance rather than a BSDF).
func (k Kind) IsEmitter() bool {
	return k == KindAreaLight || k == KindEnvLight
}

// CameraSampler is implemented by camera models (pkg/lens's Pinhole and
// RealisticLens cameras) and invoked by Interaction.Sample for the sensor's
// first-vertex component. Defined here rather than in pkg/lens so either
// side can be constructed without an import cycle.
type CameraSampler interface {
	SampleCamera(rng *sampler.Sampler, u, v float64) (ray vec3.Ray, weight vec3.Vec3, ok bool)
}

// Interaction is the tagged union. Only the fields relevant to Kind are
// populated; the rest are zero. Grouped by the variant(s) that use them.
type Interaction struct {
	Kind Kind

	// Diffuse, Glossy
	Kd  vec3.Vec3        // diffuse reflectance, used when Tex is nil
	Ks  vec3.Vec3        // specular (glossy) reflectance
	Tex *texture.Texture // optional Kd texture, may carry an alpha channel

	// Glossy anisotropic GGX roughness, precomputed from (Ns, aniso) via
	// RoughnessFromPhong (spec §4.4.2).
	AlphaX, AlphaY float64

	// FresnelSpecular
	IOR float64 // index of refraction on the dense side

	// AreaLight / emitted radiance for any emissive kind
	Ke vec3.Vec3

	// AreaLight: triangles belonging to the emitting object, in world
	// space, and a precomputed area-proportional selection distribution.
	Triangles []geometry.Triangle
	AreaDist  *sampler.Discrete1D
	TotalArea float64

	// EnvLight
	EnvTex      *texture.Texture
	EnvDist     *sampler.Discrete2D
	EnvRotation float64

	// Pinhole / RealisticLens
	Camera CameraSampler
}

// Sample result, shared by all variants with a Sample method.
type SampleResult struct {
	Ray    vec3.Ray
	Weight vec3.Vec3
}

// LightSampleResult is the result of sampling a point/direction on an
// emitter from a shading point.
type LightSampleResult struct {
	Wo       vec3.Vec3
	Distance float64
	Le       vec3.Vec3
	PDF      float64
}

// sidesOppose reports whether wi and wo lie on opposite sides of the
// geometric normal n, i.e. sign(wi·n)*sign(wo·n) <= 0 (spec §4.4's
// "opposite sides of the geometric normal" test used by Eval).
func sidesOppose(wi, wo, n vec3.Vec3) bool {
	return !vec3.SameHemisphere(wi, wo, n)
}

// Sample draws an outgoing ray and throughput weight for the component.
// wi is the incident direction at the surface for reflective/specular
// components; for Pinhole/RealisticLens it instead carries the jittered
// pixel coordinates in (wi.X, wi.Y) per spec §4.10 step 1.
func (ia *Interaction) Sample(rng *sampler.Sampler, surface geometry.SurfaceInteraction, wi vec3.Vec3) (SampleResult, bool) {
	switch ia.Kind {
	case KindPinhole, KindRealisticLens:
		ray, weight, ok := ia.Camera.SampleCamera(rng, wi.X, wi.Y)
		return SampleResult{Ray: ray, Weight: weight}, ok
	case KindDiffuse:
		return ia.sampleDiffuse(rng, surface, wi)
	case KindGlossy:
		return ia.sampleGlossy(rng, surface, wi)
	case KindTransparentMask:
		return ia.sampleTransparentMask(surface, wi)
	case KindFresnelSpecular:
		return ia.sampleFresnelSpecular(rng, surface, wi)
	case KindPerfectMirror:
		return ia.samplePerfectMirror(surface, wi)
	default:
		return SampleResult{}, false
	}
}

// Eval returns the BSDF value for the Diffuse and Glossy components and
// zero for every other kind (AreaLight/EnvLight report emitted radiance
// through Emit instead, since they have no reflective BSDF).
func (ia *Interaction) Eval(surface geometry.SurfaceInteraction, wi, wo vec3.Vec3) vec3.Vec3 {
	switch ia.Kind {
	case KindDiffuse:
		return ia.evalDiffuse(surface, wi, wo)
	case KindGlossy:
		return ia.evalGlossy(surface, wi, wo)
	default:
		return vec3.Vec3{}
	}
}

// PDF returns the solid-angle density of Sample producing wo given wi.
func (ia *Interaction) PDF(surface geometry.SurfaceInteraction, wi, wo vec3.Vec3) float64 {
	switch ia.Kind {
	case KindDiffuse:
		return ia.pdfDiffuse(surface, wi, wo)
	case KindGlossy:
		return ia.pdfGlossy(surface, wi, wo)
	default:
		return 0
	}
}
