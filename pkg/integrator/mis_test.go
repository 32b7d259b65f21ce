package integrator

import (
	"math"
	"testing"
)

// TestNEEDenominatorMatchesSpecFormula pins down the literal NEE weight
// (spec §4.10 step 2b): contribution is divided by
// pdf_bsdf + pdf_light * pdf_pick_light, not by a freshly-normalized
// pdf_light_combined / (pdf_bsdf + pdf_light_combined) ratio computed
// any other way. Design Notes records this exact form (and its hit-side
// counterpart in TestHitSideMISFormulaMatchesSpec) as an open question
// to preserve verbatim rather than "fix" toward a from-scratch balance
// heuristic derivation.
func TestNEEDenominatorMatchesSpecFormula(t *testing.T) {
	pdfBSDF := 4.0
	pdfLight := 2.0
	pdfPickLight := 0.5

	got := pdfBSDF + pdfLight*pdfPickLight
	want := 5.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("NEE denominator = %f, want %f", got, want)
	}
}

// TestHitSideMISFormulaMatchesSpec pins down the literal hit-side weight
// (spec §4.10 step 2d): p = pdf_light * pdf_pick_light / pdf_bsdf + 1,
// applied to throughput that already carries a 1/pdf_bsdf factor from
// the preceding Sample call's weight. Written out as a single expression
// over pdf_bsdf and pdf_light_combined alone (without the pre-divided
// throughput), this is algebraically equivalent to a balance-heuristic
// weight of pdf_bsdf/(pdf_bsdf+pdf_light_combined) -- the two sites
// reach a consistent MIS treatment via differently-shaped expressions,
// and the source's literal shape (division by pdf_bsdf inside p, rather
// than folding pdf_bsdf into the numerator the way the NEE site does) is
// preserved here for bit-compatibility rather than rewritten to match
// the NEE site's shape.
func TestHitSideMISFormulaMatchesSpec(t *testing.T) {
	pdfBSDF := 4.0
	pdfLightCombined := 1.0 // pdf_light * pdf_pick_light

	p := pdfLightCombined/pdfBSDF + 1
	want := 1.25
	if math.Abs(p-want) > 1e-12 {
		t.Errorf("hit-side p = %f, want %f", p, want)
	}

	// Equivalent balance-heuristic weight once the throughput's implicit
	// 1/pdf_bsdf factor is accounted for.
	effectiveWeight := 1 / p
	wantWeight := pdfBSDF / (pdfBSDF + pdfLightCombined)
	if math.Abs(effectiveWeight-wantWeight) > 1e-12 {
		t.Errorf("effective hit-side weight = %f, want %f (balance heuristic equivalent)", effectiveWeight, wantWeight)
	}
}

// TestHitSideMISFallsBackToOneForSpecularOrFirstVertex restates the
// condition under which TracePixel applies the hit-side MIS weight and
// checks that it is false, so p stays exactly 1 (no MIS weighting at
// all), when length is 0, the vertex that produced the ray was
// specular, or the scene has no lights, per spec §4.10 step 2d. It does
// not call TracePixel itself.
func TestHitSideMISFallsBackToOneForSpecularOrFirstVertex(t *testing.T) {
	cases := []struct {
		length     int
		specular   bool
		lightCount int
	}{
		{length: 0, specular: false, lightCount: 3},
		{length: 2, specular: true, lightCount: 3},
		{length: 2, specular: false, lightCount: 0},
	}
	for _, c := range cases {
		weighted := c.length > 0 && !c.specular && c.lightCount > 0
		if weighted {
			t.Errorf("case %+v should fall back to p=1, but the MIS branch would trigger", c)
		}
	}
}
