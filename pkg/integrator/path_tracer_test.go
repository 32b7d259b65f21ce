package integrator

import (
	"math"
	"testing"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/interaction"
	"github.com/tholcomb/raydiant/pkg/lens"
	"github.com/tholcomb/raydiant/pkg/object"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/scene"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// buildFloorAndLight builds a 10x10 diffuse floor in the XZ plane at y=0
// and a small area-light quad above it at y=2, facing down.
func buildFloorAndLight() (*scene.Scene, int) {
	arena := &geometry.Arena{}

	fp0 := arena.AddPosition(vec3.New(-5, 0, -5))
	fp1 := arena.AddPosition(vec3.New(5, 0, -5))
	fp2 := arena.AddPosition(vec3.New(5, 0, 5))
	fp3 := arena.AddPosition(vec3.New(-5, 0, 5))
	floorFaces := []geometry.Face{
		{V: [3]geometry.VertexIndex{{Position: fp0, Normal: -1, TexCoord: -1}, {Position: fp1, Normal: -1, TexCoord: -1}, {Position: fp2, Normal: -1, TexCoord: -1}}},
		{V: [3]geometry.VertexIndex{{Position: fp0, Normal: -1, TexCoord: -1}, {Position: fp2, Normal: -1, TexCoord: -1}, {Position: fp3, Normal: -1, TexCoord: -1}}},
	}
	floorObj := object.New(floorFaces, interaction.NewDiffuse(vec3.New(0.8, 0.8, 0.8), nil))

	// Light quad facing -Y (downward toward the floor): reversed winding
	// (0,2,1)(0,3,2) so the cross product points toward -Y for this
	// vertex layout.
	lp0 := arena.AddPosition(vec3.New(-0.5, 2, -0.5))
	lp1 := arena.AddPosition(vec3.New(-0.5, 2, 0.5))
	lp2 := arena.AddPosition(vec3.New(0.5, 2, 0.5))
	lp3 := arena.AddPosition(vec3.New(0.5, 2, -0.5))
	lightTrisFaces := []geometry.Face{
		{V: [3]geometry.VertexIndex{{Position: lp0, Normal: -1, TexCoord: -1}, {Position: lp2, Normal: -1, TexCoord: -1}, {Position: lp1, Normal: -1, TexCoord: -1}}},
		{V: [3]geometry.VertexIndex{{Position: lp0, Normal: -1, TexCoord: -1}, {Position: lp3, Normal: -1, TexCoord: -1}, {Position: lp2, Normal: -1, TexCoord: -1}}},
	}
	lightTris := []geometry.Triangle{
		geometry.NewTriangle(vec3.New(-0.5, 2, -0.5), vec3.New(0.5, 2, 0.5), vec3.New(-0.5, 2, 0.5), 1, 0),
		geometry.NewTriangle(vec3.New(-0.5, 2, -0.5), vec3.New(0.5, 2, -0.5), vec3.New(0.5, 2, 0.5), 1, 1),
	}
	lightObj := object.New(lightTrisFaces, interaction.NewAreaLight(lightTris, vec3.New(15, 15, 15)))

	objects := []*object.Object{floorObj, lightObj}
	scene := scene.NewScene(objects, arena, nil, -1, -1, 1)
	return scene, 0
}

func TestDirectLightingPositiveBelowAreaLight(t *testing.T) {
	scene, floorIdx := buildFloorAndLight()
	pt := NewPathTracer(scene, 8)

	diffuse := scene.Objects[floorIdx].Components[0]
	surface := geometry.NewSurfaceInteraction(vec3.New(0, 0, 0), vec3.New(0, 1, 0), vec3.New(0, 1, 0), vec3.NewVec2(0, 0), 1, floorIdx, 0)
	rng := sampler.New(99, 0)

	total := vec3.Vec3{}
	const trials = 2000
	for i := 0; i < trials; i++ {
		wi := vec3.New(0, 1, 0) // arbitrary incident direction for a diffuse surface
		contribution := pt.sampleDirectLighting(rng, vec3.New(1, 1, 1), diffuse, surface, wi)
		total = total.Add(contribution)
	}
	mean := total.Mul(1.0 / trials)
	if mean.Luminance() <= 0 {
		t.Fatalf("expected positive direct lighting below the area light, got %v", mean)
	}
	if math.IsNaN(mean.X) || math.IsInf(mean.X, 0) {
		t.Fatalf("direct lighting produced a non-finite value: %v", mean)
	}
}

func TestSampleDirectLightingZeroBehindFloor(t *testing.T) {
	scene, floorIdx := buildFloorAndLight()
	pt := NewPathTracer(scene, 8)

	diffuse := scene.Objects[floorIdx].Components[0]
	// A surface facing away from the light (normal pointing down) should
	// receive no direct contribution from a light above it.
	surface := geometry.NewSurfaceInteraction(vec3.New(0, 0, 0), vec3.New(0, -1, 0), vec3.New(0, -1, 0), vec3.NewVec2(0, 0), 1, floorIdx, 0)
	rng := sampler.New(3, 0)

	contribution := pt.sampleDirectLighting(rng, vec3.New(1, 1, 1), diffuse, surface, vec3.New(0, -1, 0))
	if !contribution.IsZero() {
		t.Errorf("expected zero contribution for a surface facing away from the light, got %v", contribution)
	}
}

func TestTracePixelWithNoLightsReturnsZeroRadiance(t *testing.T) {
	arena := &geometry.Arena{}
	p0 := arena.AddPosition(vec3.New(-5, 0, -5))
	p1 := arena.AddPosition(vec3.New(5, 0, -5))
	p2 := arena.AddPosition(vec3.New(5, 0, 5))
	faces := []geometry.Face{{V: [3]geometry.VertexIndex{{Position: p0, Normal: -1, TexCoord: -1}, {Position: p1, Normal: -1, TexCoord: -1}, {Position: p2, Normal: -1, TexCoord: -1}}}}
	floorObj := object.New(faces, interaction.NewDiffuse(vec3.New(0.8, 0.8, 0.8), nil))

	pinholeCam := lens.NewPinhole(vec3.New(0, 1, 3), vec3.New(0, 0, 0), vec3.New(0, 1, 0), 40, 1)
	sensorObj := object.New(nil, interaction.NewPinhole(pinholeCam))
	objects := []*object.Object{floorObj, sensorObj}
	scene := scene.NewScene(objects, arena, nil, 1, -1, 1)

	pt := NewPathTracer(scene, 8)
	rng := sampler.New(1, 0)
	radiance := pt.TracePixel(rng, 0.5, 0.5)
	if !radiance.IsZero() {
		t.Errorf("expected zero radiance in a scene with no lights, got %v", radiance)
	}
}
