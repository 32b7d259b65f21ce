// Package integrator implements the unidirectional path-tracing
// estimator (spec §4.10): next-event estimation with a deliberately
// asymmetric multiple-importance-sampling denominator, Russian roulette,
// and component selection at every vertex. Grounded on the teacher's
// pkg/integrator/path_tracing.go loop shape (emitted-light-then-scatter,
// direct/indirect split, Russian-roulette compensation), rebuilt as an
// explicit iterative loop over path length with the object/interaction
// model instead of core.Material/core.HitRecord, and with the spec's MIS
// weights taken literally rather than the teacher's symmetric power
// heuristic (Design Notes open question: the asymmetry is preserved on
// purpose, not "fixed").
package integrator

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/interaction"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/scene"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// PathTracer renders a path starting at the sensor object for a single
// pixel sample (spec §4.10).
type PathTracer struct {
	Scene     *scene.Scene
	MaxLength int
}

// NewPathTracer builds a path tracer bound to scene with the given
// maximum path length.
func NewPathTracer(scene *scene.Scene, maxLength int) *PathTracer {
	return &PathTracer{Scene: scene, MaxLength: maxLength}
}

// shadowEpsilon shortens the shadow ray's far bound so the NEE
// visibility test doesn't self-intersect the emitter it's aimed at
// (spec §4.10 step 2b: "th = distance * (1 - epsilon)").
const shadowEpsilon = 1e-4

// russianRouletteMinLength is the path length after which Russian
// roulette termination is considered (spec §4.10 step 2e: "when length
// > 3").
const russianRouletteMinLength = 3

// TracePixel draws one path sample for the jittered pixel coordinate
// (u, v) and returns its radiance contribution (spec §4.10 steps 1-3).
func (pt *PathTracer) TracePixel(rng *sampler.Sampler, u, v float64) vec3.Vec3 {
	throughput := vec3.New(1, 1, 1)
	radiance := vec3.Vec3{}
	length := 0

	currentObjIdx := pt.Scene.SensorIdx
	var currentSurface geometry.SurfaceInteraction
	wi := vec3.New(u, v, 0)

	for length < pt.MaxLength {
		currentObj := pt.Scene.Objects[currentObjIdx]
		component, pcs, ok := currentObj.SelectComponent(rng, currentSurface)
		if !ok {
			break
		}
		throughput = throughput.Mul(1 / pcs)

		if !component.Kind.Specular() && length >= 1 && pt.Scene.NumLights() > 0 {
			radiance = radiance.Add(pt.sampleDirectLighting(rng, throughput, component, currentSurface, wi))
		}

		sample, sampleOK := component.Sample(rng, currentSurface, wi)
		if !sampleOK {
			break
		}
		throughput = throughput.MulVec(sample.Weight)

		hit, hitOK := pt.Scene.Intersect(sample.Ray.Origin, sample.Ray.Direction, 1e-4, math.Inf(1), true)
		if !hitOK {
			break
		}

		if emitter := pt.Scene.EmitterComponent(hit.ObjectIdx); emitter != nil {
			p := 1.0
			if length > 0 && !component.Kind.Specular() && pt.Scene.NumLights() > 0 {
				pdfBSDF := component.PDF(currentSurface, wi, sample.Ray.Direction)
				pdfPickLight := 1.0 / float64(pt.Scene.NumLights())
				pdfLight := emitter.PDFLight(currentSurface, hit.Surface, sample.Ray.Direction) * pdfPickLight
				if pdfBSDF > 0 {
					p = pdfLight/pdfBSDF + 1
				}
			}

			var le vec3.Vec3
			if hit.IsEnv {
				le = emitter.EnvRadiance(sample.Ray.Direction)
			} else {
				le = emitter.Emit(hit.Surface.GeomNormal, sample.Ray.Direction.Neg())
			}
			if p > 0 {
				radiance = radiance.Add(throughput.MulVec(le).Mul(1 / p))
			}
		}

		if length > russianRouletteMinLength {
			q := math.Max(0.2, 1-throughput.MaxElement())
			if rng.U() < q {
				break
			}
			throughput = throughput.Mul(1 / (1 - q))
		}

		wi = sample.Ray.Direction.Neg()
		currentObjIdx = hit.ObjectIdx
		currentSurface = hit.Surface
		length++
	}

	return radiance
}

// sampleDirectLighting is next-event estimation at a non-specular vertex
// (spec §4.10 step 2b). It picks one light uniformly, traces a shadow
// ray, and weights the contribution by the asymmetric balance-heuristic-
// style denominator pdf_bsdf + pdf_light * pdf_pick_light. This is
// preserved exactly as specified rather than normalized into a textbook
// symmetric balance heuristic.
func (pt *PathTracer) sampleDirectLighting(rng *sampler.Sampler, throughput vec3.Vec3, component *interaction.Interaction, surface geometry.SurfaceInteraction, wi vec3.Vec3) vec3.Vec3 {
	lightSample, _, pdfPickLight, ok := pt.Scene.SampleOneLight(rng, surface)
	if !ok || lightSample.PDF <= 0 || lightSample.Le.IsZero() {
		return vec3.Vec3{}
	}

	shadowFar := lightSample.Distance * (1 - shadowEpsilon)
	if _, blocked := pt.Scene.Intersect(surface.Point, lightSample.Wo, 1e-4, shadowFar, false); blocked {
		return vec3.Vec3{}
	}

	f := component.Eval(surface, wi, lightSample.Wo)
	if f.IsZero() {
		return vec3.Vec3{}
	}
	pdfBSDF := component.PDF(surface, wi, lightSample.Wo)

	denom := pdfBSDF + lightSample.PDF*pdfPickLight
	if denom <= 0 {
		return vec3.Vec3{}
	}

	contribution := f.MulVec(lightSample.Le).Mul(1 / denom)
	return throughput.MulVec(contribution)
}
