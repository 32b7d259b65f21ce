package interaction

import (
	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// samplePerfectMirror reflects wi about the shading normal with weight 1
// (spec §4.4.5). Its PDF is a Dirac delta; the integrator treats this
// kind specially (Kind.Specular) rather than calling PDF/Eval on it.
func (ia *Interaction) samplePerfectMirror(surface geometry.SurfaceInteraction, wi vec3.Vec3) (SampleResult, bool) {
	n := surface.Normal
	if n.Dot(wi) < 0 {
		n = n.Neg()
	}
	wo := vec3.Reflect(wi, n)
	if wo.Dot(surface.GeomNormal)*wi.Dot(surface.GeomNormal) < 0 {
		return SampleResult{}, false
	}
	return SampleResult{
		Ray:    vec3.NewRay(surface.Point, wo),
		Weight: vec3.Splat(1),
	}, true
}
