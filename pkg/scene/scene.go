// Package scene owns every object, the shared geometry/texture arenas,
// and the BVH, and routes ray intersection and light sampling for the
// integrator (spec §3, §4.8). Grounded on the teacher's pkg/scene/scene.go
// Scene-owns-shapes-lights-BVH shape, rebuilt around the spec's shared
// arenas, index-based object/light/env/sensor references, and the
// synthetic environment-light miss hit.
package scene

import (
	"github.com/tholcomb/raydiant/pkg/bvh"
	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/interaction"
	"github.com/tholcomb/raydiant/pkg/object"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Scene owns every object plus the shared arenas and acceleration
// structure built once at scene-construction time.
type Scene struct {
	Objects   []*object.Object
	Arena     *geometry.Arena
	Textures  []*texture.Texture
	BVH       *bvh.BVH
	SensorIdx int
	EnvIdx    int // -1 if the scene has no environment light
	LightIdxs []int
}

// Hit is a scene-level intersection result: either a real surface hit
// (with ObjectIdx >= 0 and a populated Surface) or, on a miss with an
// environment light enabled, a synthetic hit whose ObjectIdx is EnvIdx
// and Surface is the zero value (spec §4.8).
type Hit struct {
	ObjectIdx int
	Surface   geometry.SurfaceInteraction
	IsEnv     bool
}

// NumLights returns the number of light objects in the scene (area
// lights plus, if present, the environment light).
func (s *Scene) NumLights() int {
	return len(s.LightIdxs)
}

// NewScene flattens every object's faces into BVH triangles, builds the
// BVH, and indexes the objects carrying an emitter component (AreaLight
// or EnvLight) into LightIdxs. sensorIdx and envIdx are the caller's
// pre-known object indices for the sensor and, if present, the
// environment light (-1 when there is none).
func NewScene(objects []*object.Object, arena *geometry.Arena, textures []*texture.Texture, sensorIdx, envIdx, numWorkers int) *Scene {
	var tris []geometry.Triangle
	var lightIdxs []int

	for objIdx, obj := range objects {
		for faceIdx, face := range obj.Faces {
			p0 := arena.Positions[face.V[0].Position]
			p1 := arena.Positions[face.V[1].Position]
			p2 := arena.Positions[face.V[2].Position]
			tris = append(tris, geometry.NewTriangle(p0, p1, p2, objIdx, faceIdx))
		}
		for _, c := range obj.Components {
			if c.Kind.IsEmitter() {
				lightIdxs = append(lightIdxs, objIdx)
				break
			}
		}
	}

	return &Scene{
		Objects:   objects,
		Arena:     arena,
		Textures:  textures,
		BVH:       bvh.Build(tris, numWorkers),
		SensorIdx: sensorIdx,
		EnvIdx:    envIdx,
		LightIdxs: lightIdxs,
	}
}

// Intersect traverses the BVH for the nearest hit in [tMin, tMax]. On a
// miss, if includeEnv is true and the scene has an environment light, it
// returns a synthetic hit tagged with the env-light object index and no
// surface point; otherwise it returns ok=false (spec §4.8).
func (s *Scene) Intersect(origin, direction vec3.Vec3, tMin, tMax float64, includeEnv bool) (Hit, bool) {
	bvhHit, ok := s.BVH.Intersect(origin, direction, tMin, tMax)
	if !ok {
		if includeEnv && s.EnvIdx >= 0 {
			return Hit{ObjectIdx: s.EnvIdx, IsEnv: true}, true
		}
		return Hit{}, false
	}

	tri := s.BVH.Triangles[bvhHit.TriangleIdx]
	obj := s.Objects[tri.ObjectIdx]
	face := obj.Faces[tri.FaceIdx]

	point := origin.Add(direction.Mul(bvhHit.T))
	normal, hasVertexNormal := s.interpolateNormal(face, tri.GeomNormal, bvhHit.U, bvhHit.V)
	if !hasVertexNormal {
		normal = tri.GeomNormal
	}
	normal = normal.Normalize()

	uv := s.interpolateTexCoord(face, bvhHit.U, bvhHit.V)

	surface := geometry.NewSurfaceInteraction(point, normal, tri.GeomNormal, uv, bvhHit.T, tri.ObjectIdx, tri.FaceIdx)
	return Hit{ObjectIdx: tri.ObjectIdx, Surface: surface}, true
}

// interpolateNormal barycentrically interpolates the face's three vertex
// normals; it reports hasVertexNormal=false if any vertex lacks a normal
// index, in which case the caller falls back to the triangle's geometric
// normal (spec §4.8).
func (s *Scene) interpolateNormal(face geometry.Face, geomNormal vec3.Vec3, u, v float64) (vec3.Vec3, bool) {
	for _, vi := range face.V {
		if vi.Normal < 0 {
			return geomNormal, false
		}
	}
	n0 := s.Arena.Normals[face.V[0].Normal]
	n1 := s.Arena.Normals[face.V[1].Normal]
	n2 := s.Arena.Normals[face.V[2].Normal]
	return vec3.Barycentric(n0, n1, n2, u, v), true
}

// interpolateTexCoord barycentrically interpolates the face's three
// texcoords, substituting zero for any vertex lacking a texcoord index
// (spec §4.8).
func (s *Scene) interpolateTexCoord(face geometry.Face, u, v float64) vec3.Vec2 {
	get := func(idx int) vec3.Vec2 {
		if idx < 0 {
			return vec3.Vec2{}
		}
		return s.Arena.TexCoords[idx]
	}
	uv0, uv1, uv2 := get(face.V[0].TexCoord), get(face.V[1].TexCoord), get(face.V[2].TexCoord)
	w0 := 1 - u - v
	return uv0.Mul(w0).Add(uv1.Mul(u)).Add(uv2.Mul(v))
}

// SampleOneLight picks one of the scene's lights uniformly at random and
// samples it from the given shading surface (spec §4.10 step 2b: the
// light is chosen with probability 1/#lights, independent of power or
// area). It returns the per-light sample, the chosen light's emitter
// component, and pdfPickLight = 1/#lights so the caller can build the
// combined NEE pdf pdf_light * pdf_pick_light.
func (s *Scene) SampleOneLight(rng *sampler.Sampler, shadingSurface geometry.SurfaceInteraction) (interaction.LightSampleResult, *interaction.Interaction, float64, bool) {
	n := len(s.LightIdxs)
	if n == 0 {
		return interaction.LightSampleResult{}, nil, 0, false
	}
	pdfPickLight := 1.0 / float64(n)
	slot := int(rng.U() * float64(n))
	if slot >= n {
		slot = n - 1
	}
	light := s.LightComponent(slot)
	result, ok := light.SampleLight(rng, shadingSurface)
	if !ok {
		return interaction.LightSampleResult{}, nil, pdfPickLight, false
	}
	return result, light, pdfPickLight, true
}

// LightComponent returns the emitter interaction component (AreaLight or
// EnvLight) for the light object at the given index into LightIdxs.
func (s *Scene) LightComponent(lightSlot int) *interaction.Interaction {
	obj := s.Objects[s.LightIdxs[lightSlot]]
	for _, c := range obj.Components {
		if c.Kind.IsEmitter() {
			return c
		}
	}
	return nil
}

// EmitterComponent returns the emitter interaction component owned by
// the given object index, or nil if that object has none.
func (s *Scene) EmitterComponent(objectIdx int) *interaction.Interaction {
	for _, c := range s.Objects[objectIdx].Components {
		if c.Kind.IsEmitter() {
			return c
		}
	}
	return nil
}
