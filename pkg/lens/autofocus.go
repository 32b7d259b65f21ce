package lens

import "github.com/tholcomb/raydiant/pkg/vec3"

// autofocusIterations is the bisection step count (spec §4.9: "99
// iterations").
const autofocusIterations = 99

// autofocusFanOffsets are the fractional-aperture-radius x offsets used
// to trace the convergence fan at each bisection step.
var autofocusFanOffsets = []float64{0.1, 0.2, 0.35}

// withFilmDistance returns a copy of the stack with the sensor-to-last-
// element thickness replaced by filmDistance, re-deriving every
// element's z offset.
func (s *Stack) withFilmDistance(filmDistance float64) *Stack {
	elements := make([]Element, len(s.Elements))
	copy(elements, s.Elements)
	elements[len(elements)-1].Thickness = filmDistance
	return NewStack(elements)
}

// focusDistance traces a small fan of rays, parallel to the optical
// axis and offset along x, from the sensor plane through the stack, and
// returns the object-side axial position (distance in front of the
// z=0 sensor plane) at which the fan converges on the optical axis
// (spec §4.9: "find the axial image-plane position").
func (s *Stack) focusDistance() (float64, bool) {
	lastEl, _ := s.LastElement()
	sum, n := 0.0, 0
	for _, frac := range autofocusFanOffsets {
		x := frac * lastEl.ApertureRadius
		ray := vec3.NewRay(vec3.New(x, 0, 0), vec3.New(0, 0, -1))
		out, ok := s.Trace(ray)
		if !ok || out.Direction.X == 0 {
			continue
		}
		t := -out.Origin.X / out.Direction.X
		z := out.Origin.Z + t*out.Direction.Z
		sum += -z
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Autofocus bisects the sensor-to-last-element distance in [eps, 1e10]
// for 99 iterations, at each step tracing the convergence fan, and
// returns the distance whose effective focus matches targetDistance
// (spec §4.9). Increasing the film distance moves the in-focus object
// plane closer to the lens, so the search narrows toward the lower half
// when the trial focus falls short of the target and the upper half
// otherwise.
func (s *Stack) Autofocus(targetDistance float64) float64 {
	const eps = 1e-6
	lo, hi := eps, 1e10

	for i := 0; i < autofocusIterations; i++ {
		mid := 0.5 * (lo + hi)
		trial := s.withFilmDistance(mid)
		fd, ok := trial.focusDistance()
		if !ok || fd < targetDistance {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0.5 * (lo + hi)
}
