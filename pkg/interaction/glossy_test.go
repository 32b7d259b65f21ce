package interaction

import (
	"math"
	"testing"

	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

func TestGlossySampleStaysAboveSurfaceOrFails(t *testing.T) {
	ia := NewGlossy(vec3.New(0.9, 0.9, 0.9), 80, 0.2)
	surface := flatSurface()
	wi := vec3.New(0.3, 0.9, 0.1).Normalize()

	rng := sampler.New(5, 0)
	sampled := 0
	for i := 0; i < 500; i++ {
		res, ok := ia.Sample(rng, surface, wi)
		if !ok {
			continue
		}
		sampled++
		if res.Ray.Direction.Dot(surface.Normal) <= 0 {
			t.Fatalf("sample %d: glossy direction %v below the surface", i, res.Ray.Direction)
		}
		if res.Weight.X < 0 || res.Weight.Y < 0 || res.Weight.Z < 0 {
			t.Fatalf("sample %d: negative weight %v", i, res.Weight)
		}
	}
	if sampled == 0 {
		t.Fatal("every glossy sample failed")
	}
}

func TestGlossyEvalZeroBelowSurface(t *testing.T) {
	ia := NewGlossy(vec3.New(1, 1, 1), 50, 0)
	surface := flatSurface()
	wi := vec3.New(0, 1, 0)
	wo := vec3.New(0, -1, 0)

	f := ia.Eval(surface, wi, wo)
	if f.X != 0 || f.Y != 0 || f.Z != 0 {
		t.Errorf("expected zero eval below the surface, got %v", f)
	}
}

func TestGlossyPDFIsFiniteAndNonNegative(t *testing.T) {
	ia := NewGlossy(vec3.New(0.9, 0.9, 0.9), 200, 0)
	surface := flatSurface()
	wi := vec3.New(0, 1, 0)
	wo := vec3.New(0.05, 0.99, 0.05).Normalize()

	pdf := ia.PDF(surface, wi, wo)
	if pdf < 0 {
		t.Errorf("pdf should be non-negative, got %f", pdf)
	}
	if math.IsNaN(pdf) || math.IsInf(pdf, 0) {
		t.Errorf("pdf should be finite, got %f", pdf)
	}
}
