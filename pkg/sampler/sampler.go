// Package sampler provides the per-thread random stream and the
// cosine-weighted hemisphere sampler the rest of the tracer draws from.
// Every call takes the *rand.Rand by reference; there is no process-wide
// generator (see the teacher's pkg/core/sampling.go, which already
// threads *rand.Rand through every call instead of using a global one).
package sampler

import (
	"math"
	"math/rand"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Sampler is a per-thread independent random stream. It must never be
// shared across goroutines; each render/BVH worker owns exactly one.
type Sampler struct {
	rng *rand.Rand
}

// New seeds a Sampler from (base seed, stream id) so that every worker's
// stream is independent and reproducible for a given base seed.
func New(baseSeed int64, streamID int) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(baseSeed + int64(uint64(streamID)*0x9E3779B97F4A7C15)))}
}

// U returns a uniform float in [0, 1).
func (s *Sampler) U() float64 {
	return s.rng.Float64()
}

// U2 returns two independent uniform floats in [0, 1).
func (s *Sampler) U2() (float64, float64) {
	return s.rng.Float64(), s.rng.Float64()
}

// IntN returns a uniform integer in [0, n).
func (s *Sampler) IntN(n int) int {
	return s.rng.Intn(n)
}

// CosineHemisphere draws a unit direction in the local +Z hemisphere with
// density max(0,z)/pi, using the Malley/concentric-disk method.
func (s *Sampler) CosineHemisphere() vec3.Vec3 {
	u1, u2 := s.U2()
	return CosineHemisphereSample(u1, u2)
}

// CosineHemisphereSample is the deterministic core of CosineHemisphere,
// split out so tests can check specific (u1,u2) inputs.
func CosineHemisphereSample(u1, u2 float64) vec3.Vec3 {
	// Concentric disk mapping (Shirley & Chiu), then project to the
	// hemisphere — avoids the polar-mapping distortion near the pole.
	a := 2*u1 - 1
	b := 2*u2 - 1

	var r, phi float64
	if a == 0 && b == 0 {
		r, phi = 0, 0
	} else if math.Abs(a) > math.Abs(b) {
		r = a
		phi = (math.Pi / 4) * (b / a)
	} else {
		r = b
		phi = math.Pi/2 - (math.Pi/4)*(a/b)
	}

	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	z := math.Sqrt(math.Max(0, 1-x*x-y*y))
	return vec3.New(x, y, z)
}

// CosineHemispherePDF returns the solid-angle density of a direction
// sampled with CosineHemisphere, given the cosine of its angle with the
// pole (+Z in local space).
func CosineHemispherePDF(cosTheta float64) float64 {
	return math.Max(0, cosTheta) / math.Pi
}
