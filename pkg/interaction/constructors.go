package interaction

import (
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// NewDiffuse builds a Diffuse component with a constant reflectance and
// an optional texture (nil if untextured).
func NewDiffuse(kd vec3.Vec3, tex *texture.Texture) *Interaction {
	return &Interaction{Kind: KindDiffuse, Kd: kd, Tex: tex}
}

// NewGlossy builds a Glossy component from specular reflectance and a
// Phong-like exponent/anisotropy pair, converted to GGX roughness via
// RoughnessFromPhong (spec §4.4.2).
func NewGlossy(ks vec3.Vec3, ns, aniso float64) *Interaction {
	ax, ay := RoughnessFromPhong(ns, aniso)
	return &Interaction{Kind: KindGlossy, Ks: ks, AlphaX: ax, AlphaY: ay}
}

// NewTransparentMask builds the pass-through component used when the
// Diffuse texture's alpha channel stochastically fails (spec §4.4.3,
// §4.5).
func NewTransparentMask() *Interaction {
	return &Interaction{Kind: KindTransparentMask}
}

// NewFresnelSpecular builds a dielectric interface component with the
// given index of refraction.
func NewFresnelSpecular(ior float64) *Interaction {
	return &Interaction{Kind: KindFresnelSpecular, IOR: ior}
}

// NewPerfectMirror builds a delta-reflection mirror component.
func NewPerfectMirror() *Interaction {
	return &Interaction{Kind: KindPerfectMirror}
}

// NewPinhole builds a sensor component that delegates ray generation to
// a CameraSampler implementation (pkg/lens.PinholeCamera).
func NewPinhole(camera CameraSampler) *Interaction {
	return &Interaction{Kind: KindPinhole, Camera: camera}
}

// NewRealisticLens builds a sensor component that delegates ray
// generation to a CameraSampler implementation
// (pkg/lens.RealisticLensCamera).
func NewRealisticLens(camera CameraSampler) *Interaction {
	return &Interaction{Kind: KindRealisticLens, Camera: camera}
}
