package interaction

import (
	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// sampleTransparentMask passes the ray straight through the surface with
// weight 1 (spec §4.4.3). It is selected by the Diffuse component's alpha
// stochastic switch, never chosen directly as a component of its own.
func (ia *Interaction) sampleTransparentMask(surface geometry.SurfaceInteraction, wi vec3.Vec3) (SampleResult, bool) {
	wo := wi.Neg()
	return SampleResult{
		Ray:    vec3.NewRay(surface.Point, wo),
		Weight: vec3.Splat(1),
	}, true
}
