package object

import (
	"math"
	"testing"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/interaction"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

func checkerAlphaTexture(alpha float64) *texture.Texture {
	tex := texture.New(1, 1, []vec3.Vec3{{X: 1, Y: 1, Z: 1}})
	tex.Alpha = []float64{alpha}
	return tex
}

func surfaceAt(uv vec3.Vec2) geometry.SurfaceInteraction {
	return geometry.NewSurfaceInteraction(
		vec3.New(0, 0, 0), vec3.New(0, 1, 0), vec3.New(0, 1, 0), uv, 1, 0, 0,
	)
}

func TestSelectComponentSingleComponentAlwaysPCS1(t *testing.T) {
	mirror := interaction.NewPerfectMirror()
	obj := New(nil, mirror)
	rng := sampler.New(1, 0)

	got, pcs, ok := obj.SelectComponent(rng, surfaceAt(vec3.NewVec2(0, 0)))
	if !ok || got != mirror || pcs != 1 {
		t.Fatalf("single-component object: got=%v pcs=%f ok=%v, want mirror/1/true", got, pcs, ok)
	}
}

func TestSelectComponentEmptyObjectFails(t *testing.T) {
	obj := New(nil)
	rng := sampler.New(1, 0)
	_, _, ok := obj.SelectComponent(rng, surfaceAt(vec3.NewVec2(0, 0)))
	if ok {
		t.Fatal("expected selection to fail for an object with no components")
	}
}

func TestSelectComponentDiffuseGlossyProportionalToAlbedo(t *testing.T) {
	diffuse := interaction.NewDiffuse(vec3.New(0.8, 0.8, 0.8), nil)
	glossy := interaction.NewGlossy(vec3.New(0.2, 0.2, 0.2), 50, 0)
	obj := New(nil, diffuse, glossy)

	rng := sampler.New(7, 0)
	diffuseCount := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		got, _, ok := obj.SelectComponent(rng, surfaceAt(vec3.NewVec2(0, 0)))
		if !ok {
			t.Fatalf("trial %d: selection unexpectedly failed", i)
		}
		if got.Kind == interaction.KindDiffuse {
			diffuseCount++
		}
	}

	wantFrac := 0.8 / (0.8 + 0.2)
	got := float64(diffuseCount) / trials
	if math.Abs(got-wantFrac) > 0.02 {
		t.Errorf("diffuse selection fraction %f, want close to %f", got, wantFrac)
	}
}

func TestSelectComponentAllZeroAlbedoTreatedAsDiffuse(t *testing.T) {
	diffuse := interaction.NewDiffuse(vec3.Vec3{}, nil)
	glossy := interaction.NewGlossy(vec3.Vec3{}, 50, 0)
	obj := New(nil, diffuse, glossy)

	rng := sampler.New(11, 0)
	for i := 0; i < 50; i++ {
		got, pcs, ok := obj.SelectComponent(rng, surfaceAt(vec3.NewVec2(0, 0)))
		if !ok || got.Kind != interaction.KindDiffuse || pcs != 1 {
			t.Fatalf("trial %d: got=%v pcs=%f ok=%v, want all-diffuse with pcs=1", i, got, pcs, ok)
		}
	}
}

func TestSelectComponentSwitchesToTransparentMaskBelowAlpha(t *testing.T) {
	// A texture whose single pixel has alpha 0.3: roughly 70% of the
	// times Diffuse is picked, it should switch to TransparentMask.
	tex := checkerAlphaTexture(0.3)
	diffuse := interaction.NewDiffuse(vec3.New(1, 1, 1), tex)
	glossy := interaction.NewGlossy(vec3.Vec3{}, 50, 0) // zero Ks: always picks diffuse branch
	obj := New(nil, diffuse, glossy)

	rng := sampler.New(13, 0)
	transparentCount := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		got, _, ok := obj.SelectComponent(rng, surfaceAt(vec3.NewVec2(0.5, 0.5)))
		if !ok {
			t.Fatalf("trial %d: selection unexpectedly failed", i)
		}
		if got.Kind == interaction.KindTransparentMask {
			transparentCount++
		}
	}

	wantFrac := 0.7 // 1 - alpha
	got := float64(transparentCount) / trials
	if math.Abs(got-wantFrac) > 0.02 {
		t.Errorf("transparent-mask fraction %f, want close to %f", got, wantFrac)
	}
}
