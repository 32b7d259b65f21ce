package interaction

import (
	"math"
	"testing"
)

func TestRoughnessFromPhongIsotropicMatchesSymmetricFormula(t *testing.T) {
	ax, ay := RoughnessFromPhong(50, 0)
	if math.Abs(ax-ay) > 1e-12 {
		t.Errorf("isotropic (aniso=0) should give ax == ay, got ax=%f ay=%f", ax, ay)
	}
	wantR := 2.0 / 52.0
	if math.Abs(ax-wantR) > 1e-12 {
		t.Errorf("ax = %f, want %f", ax, wantR)
	}
}

func TestRoughnessFromPhongFloorsAtMinAlpha(t *testing.T) {
	ax, ay := RoughnessFromPhong(1e9, 0)
	if ax != minAlpha || ay != minAlpha {
		t.Errorf("very high Ns should floor both roughnesses at %g, got ax=%f ay=%f", minAlpha, ax, ay)
	}
}

func TestRoughnessFromPhongAnisotropyStretchesAxes(t *testing.T) {
	ax, ay := RoughnessFromPhong(50, 0.9)
	if ax <= ay {
		t.Errorf("aniso=0.9 should give ax > ay (as < 1 stretches x), got ax=%f ay=%f", ax, ay)
	}
}

func TestGGXDPeaksAtNormalIncidence(t *testing.T) {
	alphaX, alphaY := 0.1, 0.1
	atNormal := ggxD(vec3LocalTriple{x: 0, y: 0, z: 1}, alphaX, alphaY)
	atGrazing := ggxD(vec3LocalTriple{x: 0.7, y: 0, z: 0.3}, alphaX, alphaY)
	if atNormal <= atGrazing {
		t.Errorf("D should peak at normal incidence for a narrow lobe: D(normal)=%f, D(grazing)=%f", atNormal, atGrazing)
	}
}

func TestGGXG1IsInRange(t *testing.T) {
	w := vec3LocalTriple{x: 0.3, y: 0.1, z: 0.9}
	g := ggxG1(w, 0.2, 0.3)
	if g <= 0 || g > 1 {
		t.Errorf("G1 = %f, want in (0,1]", g)
	}
}

func TestSampleGGXHalfVectorIsNormalized(t *testing.T) {
	for _, u1 := range []float64{0.1, 0.5, 0.9} {
		for _, u2 := range []float64{0.1, 0.5, 0.9} {
			wh := sampleGGXHalfVector(0.2, 0.4, u1, u2)
			length := math.Sqrt(wh.x*wh.x + wh.y*wh.y + wh.z*wh.z)
			if math.Abs(length-1) > 1e-9 {
				t.Errorf("sampleGGXHalfVector(%f,%f) has length %f, want 1", u1, u2, length)
			}
			if wh.z <= 0 {
				t.Errorf("sampleGGXHalfVector(%f,%f) should stay in the upper hemisphere, got z=%f", u1, u2, wh.z)
			}
		}
	}
}
