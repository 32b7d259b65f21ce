// Package object implements the spec's Object: a face list shared by a
// small bundle of interaction components, plus the component-selection
// logic (spec §4.5) that the integrator calls on every path vertex.
// Grounded on the teacher's geometry.Shape + material.Material pairing,
// generalized into the spec's single object-owns-components-by-slice
// model (Design Notes: index-based references, no shared-ownership
// graph).
package object

import (
	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/interaction"
	"github.com/tholcomb/raydiant/pkg/sampler"
)

// Object is a face-index list (possibly empty, for the environment
// light) plus the ordered interaction components sharing those faces.
type Object struct {
	Faces      []geometry.Face
	Components []*interaction.Interaction
}

// New builds an Object from its faces and components.
func New(faces []geometry.Face, components ...*interaction.Interaction) *Object {
	return &Object{Faces: faces, Components: components}
}

// diffuseAndGlossy returns this object's Diffuse and Glossy components,
// or nil for either that isn't present.
func (o *Object) diffuseAndGlossy() (diffuse, glossy *interaction.Interaction) {
	for _, c := range o.Components {
		switch c.Kind {
		case interaction.KindDiffuse:
			diffuse = c
		case interaction.KindGlossy:
			glossy = c
		}
	}
	return diffuse, glossy
}

// SelectComponent picks one of the object's interaction components for
// the current path vertex and returns it along with the selection
// probability pcs, so the integrator can divide throughput by it (spec
// §4.5). Objects with exactly one component (sensor, a single specular
// interaction, or an emitter) always select it with pcs = 1; this also
// covers the first path vertex, whose sensor object has exactly one
// component by construction. An object with no components selects
// nothing and returns ok = false.
func (o *Object) SelectComponent(rng *sampler.Sampler, surface geometry.SurfaceInteraction) (*interaction.Interaction, float64, bool) {
	if len(o.Components) == 0 {
		return nil, 0, false
	}
	if len(o.Components) == 1 {
		return o.Components[0], 1, true
	}

	diffuse, glossy := o.diffuseAndGlossy()
	if diffuse == nil || glossy == nil {
		// Malformed bundle (spec only defines the {Diffuse, Glossy}
		// two-component case); fall back to the first component rather
		// than picking arbitrarily among unrelated kinds.
		return o.Components[0], 1, true
	}

	wd := diffuse.Albedo(surface).MaxElement()
	ws := glossy.Ks.MaxElement()
	if wd <= 0 && ws <= 0 {
		wd, ws = 1, 0
	}
	pd := wd / (wd + ws)
	ps := 1 - pd

	if rng.U() >= pd {
		return glossy, ps, true
	}

	if diffuse.HasAlphaMask() {
		alpha := diffuse.AlphaAt(surface)
		if rng.U() > alpha {
			return interaction.NewTransparentMask(), pd, true
		}
		return diffuse, pd, true
	}

	return diffuse, pd, true
}
