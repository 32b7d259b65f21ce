package interaction

import (
	"math"
	"testing"

	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

func uniformEnvTexture(w, h int, color vec3.Vec3) *texture.Texture {
	rgb := make([]vec3.Vec3, w*h)
	for i := range rgb {
		rgb[i] = color
	}
	return texture.New(w, h, rgb)
}

func TestEnvUVDirRoundTrip(t *testing.T) {
	for _, uv := range [][2]float64{{0.1, 0.2}, {0.5, 0.5}, {0.9, 0.8}, {0.0, 0.5}} {
		ia := &Interaction{Kind: KindEnvLight, EnvRotation: 0}
		wo, _ := envUVToDir(uv[0], uv[1], 0)
		u, v := ia.envDirToUV(wo)
		if math.Abs(u-uv[0]) > 1e-9 || math.Abs(v-uv[1]) > 1e-9 {
			t.Errorf("round trip (%f,%f) -> dir -> (%f,%f)", uv[0], uv[1], u, v)
		}
	}
}

func TestEnvUVDirIsUnitLength(t *testing.T) {
	wo, _ := envUVToDir(0.3, 0.7, 1.2)
	if math.Abs(wo.Length()-1) > 1e-9 {
		t.Errorf("direction length = %f, want 1", wo.Length())
	}
}

func TestEnvLightSampleUpperHemisphereOnly(t *testing.T) {
	tex := uniformEnvTexture(8, 4, vec3.New(1, 1, 1))
	ia := NewEnvLight(tex, 0)
	surface := flatSurface() // normal = +Y

	rng := sampler.New(31, 0)
	sampled := 0
	for i := 0; i < 500; i++ {
		res, ok := ia.SampleLight(rng, surface)
		if !ok {
			continue
		}
		sampled++
		if res.Wo.Dot(surface.Normal) <= 0 {
			t.Fatalf("sample %d: env direction %v should be above the shading normal", i, res.Wo)
		}
		if !math.IsInf(res.Distance, 1) {
			t.Errorf("sample %d: env light distance should be +Inf, got %f", i, res.Distance)
		}
	}
	if sampled == 0 {
		t.Fatal("every env-light sample failed")
	}
}

func TestEnvRadianceMatchesUniformTexture(t *testing.T) {
	tex := uniformEnvTexture(8, 4, vec3.New(2, 3, 4))
	ia := NewEnvLight(tex, 0)

	dir := vec3.New(0.3, 0.8, -0.2).Normalize()
	radiance := ia.EnvRadiance(dir)
	if radiance.X != 2 || radiance.Y != 3 || radiance.Z != 4 {
		t.Errorf("uniform env texture should return a constant radiance, got %v", radiance)
	}
}

func TestEnvLightPDFPositiveForVisibleDirection(t *testing.T) {
	tex := uniformEnvTexture(16, 8, vec3.New(1, 1, 1))
	ia := NewEnvLight(tex, 0)

	normal := vec3.New(0, 1, 0)
	wo := vec3.New(0.3, 0.8, 0.1).Normalize()
	pdf := ia.pdfEnvLight(normal, wo)
	if pdf <= 0 {
		t.Errorf("pdf for a direction aligned with the shading normal should be positive, got %f", pdf)
	}
}
