package interaction

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// minAlpha is the floor roughness used to keep the GGX distribution from
// degenerating into a Dirac delta (spec §4.4.2: "αx = max(1e-3, ...)").
const minAlpha = 1e-3

// RoughnessFromPhong converts a Phong-like specular exponent Ns and an
// anisotropy parameter an in [0,1] into the anisotropic GGX roughnesses
// (αx, αy), per spec §4.4.2.
func RoughnessFromPhong(ns, an float64) (alphaX, alphaY float64) {
	r := 2 / (ns + 2)
	as := math.Sqrt(math.Max(0, 1-0.9*an))
	alphaX = math.Max(minAlpha, r/as)
	alphaY = math.Max(minAlpha, r*as)
	return alphaX, alphaY
}

// ggxD evaluates the anisotropic Trowbridge-Reitz (GGX) normal
// distribution at the local-frame half-vector wh (x=tangent, y=bitangent,
// z=normal components).
func ggxD(wh vec3LocalTriple, alphaX, alphaY float64) float64 {
	cos2Theta := wh.z * wh.z
	if cos2Theta <= 0 {
		return 0
	}
	e := (wh.x*wh.x)/(alphaX*alphaX) + (wh.y*wh.y)/(alphaY*alphaY) + cos2Theta
	return 1 / (math.Pi * alphaX * alphaY * e * e)
}

// ggxLambda is the Smith auxiliary function for the anisotropic GGX
// masking-shadowing term.
func ggxLambda(w vec3LocalTriple, alphaX, alphaY float64) float64 {
	if w.z == 0 {
		return 0
	}
	tan2Theta := (1 - w.z*w.z) / (w.z * w.z)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos2Phi, sin2Phi := cosSinPhi2(w)
	alpha2 := cos2Phi*alphaX*alphaX + sin2Phi*alphaY*alphaY
	return (-1 + math.Sqrt(1+alpha2*tan2Theta)) / 2
}

// ggxG1 is the single-direction Smith masking term 1/(1+lambda(w)).
func ggxG1(w vec3LocalTriple, alphaX, alphaY float64) float64 {
	return 1 / (1 + ggxLambda(w, alphaX, alphaY))
}

// ggxG is the Smith masking-shadowing product G1(wi)*G1(wo) (spec
// §4.4.2: "G is the corresponding Smith masking-shadowing product").
func ggxG(wi, wo vec3LocalTriple, alphaX, alphaY float64) float64 {
	return ggxG1(wi, alphaX, alphaY) * ggxG1(wo, alphaX, alphaY)
}

// cosSinPhi2 returns (cos^2(phi), sin^2(phi)) for the azimuthal angle of
// a local-frame direction, degrading gracefully when the projected
// tangent-plane length is zero.
func cosSinPhi2(w vec3LocalTriple) (cos2Phi, sin2Phi float64) {
	sinTheta := math.Sqrt(math.Max(0, 1-w.z*w.z))
	if sinTheta == 0 {
		return 1, 0
	}
	cosPhi := w.x / sinTheta
	sinPhi := w.y / sinTheta
	return cosPhi * cosPhi, sinPhi * sinPhi
}

// vec3LocalTriple holds a direction already expressed in the local
// shading frame (x=tangent, y=bitangent, z=normal). A distinct type from
// vec3.Vec3 keeps GGX math from being accidentally called on world-space
// vectors.
type vec3LocalTriple struct{ x, y, z float64 }

// sampleGGXHalfVector draws a half-vector in the local shading frame from
// the anisotropic GGX distribution of normals (Walter et al. 2007),
// weighted by D(wh)*|wh.z| (spec §4.4.2: "Sample the half-vector wh...
// using two uniforms").
func sampleGGXHalfVector(alphaX, alphaY, u1, u2 float64) vec3LocalTriple {
	logSample := math.Log(1 - u1)
	if math.IsInf(logSample, -1) {
		logSample = 0
	}

	phi := math.Atan(alphaY/alphaX*math.Tan(2*math.Pi*u2)) + math.Pi*math.Floor(2*u2+0.5)

	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)
	alpha2 := 1 / (cosPhi*cosPhi/(alphaX*alphaX) + sinPhi*sinPhi/(alphaY*alphaY))
	tan2Theta := -logSample * alpha2
	cosTheta := 1 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return vec3LocalTriple{
		x: sinTheta * cosPhi,
		y: sinTheta * sinPhi,
		z: cosTheta,
	}
}

// ggxPDF returns the solid-angle density of sampleGlossy's sampling
// procedure producing direction wo given the (world-space) half-vector
// wh and shading normal n, exactly as spec §4.4.2 specifies:
// D(wh)*(wh·n) / (4*(wo·wh)*(wo·n)). whLocal is wh already expressed in
// the local shading frame (reused from sampling so D isn't recomputed
// from scratch on a second basis transform).
func ggxPDF(wh, n, wo vec3.Vec3, alphaX, alphaY float64, whLocal vec3LocalTriple) float64 {
	woDotWh := wo.Dot(wh)
	woDotN := wo.Dot(n)
	if woDotWh <= 0 || woDotN <= 0 {
		return 0
	}
	d := ggxD(whLocal, alphaX, alphaY)
	whDotN := wh.Dot(n)
	return d * whDotN / (4 * woDotWh * woDotN)
}
