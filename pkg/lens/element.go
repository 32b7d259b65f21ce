// Package lens implements the realistic multi-element lens camera (spec
// §4.9): element-by-element ray tracing through a lens prescription,
// autofocus by bisection, precomputed exit-pupil bounds, and the pinhole
// fallback camera. Grounded on the teacher's pkg/renderer.Camera
// ray-generation shape and pkg/geometry's PBRT-derived cos^4 sensor
// importance convention (camera_splat_test.go); the lens-stack trace and
// exit-pupil machinery have no corpus precedent and are built directly
// from spec formulas.
package lens

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Element is one surface in the lens stack, ordered object-side to
// sensor-side in the prescription file but walked sensor-side to
// object-side by Trace. A zero CurvatureRadius denotes an aperture stop.
type Element struct {
	CurvatureRadius float64
	Thickness       float64
	Eta             float64
	ApertureRadius  float64
}

// IsStop reports whether this element is the aperture stop.
func (e Element) IsStop() bool {
	return e.CurvatureRadius == 0
}

// Stack is an ordered lens prescription plus the geometry derived from
// it: the z-offset of each element's vertex (elements are spaced along
// -z from the sensor at z=0) and the total stack length.
type Stack struct {
	Elements []Element
	zOffsets []float64 // z of each element's vertex, negative, index-aligned with Elements
}

// NewStack computes each element's z offset by accumulating thicknesses
// from the sensor (z=0) toward the object side (spec §4.9: "lenses along
// -z").
func NewStack(elements []Element) *Stack {
	z := make([]float64, len(elements))
	cursor := 0.0
	for i := len(elements) - 1; i >= 0; i-- {
		cursor -= elements[i].Thickness
		z[i] = cursor
	}
	return &Stack{Elements: elements, zOffsets: z}
}

// Length returns the total stack length along z, sensor to the
// object-side vertex of the first element.
func (s *Stack) Length() float64 {
	if len(s.zOffsets) == 0 {
		return 0
	}
	return -s.zOffsets[0]
}

// LastElement is the sensor-side-most element, the one whose aperture
// exit-pupil precomputation traces toward.
func (s *Stack) LastElement() (Element, float64) {
	n := len(s.Elements)
	return s.Elements[n-1], s.zOffsets[n-1]
}

// intersectSphere intersects ray with a sphere of radius |radius|
// centered on the z axis at z=zCenter, choosing the root nearer the
// element vertex (the convention used by every realistic-lens tracer:
// a positive radius puts the center of curvature on the +z side of the
// vertex).
func intersectSphere(origin, dir vec3.Vec3, radius, zCenter float64) (t float64, hit vec3.Vec3, ok bool) {
	center := vec3.New(0, 0, zCenter+radius)
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, vec3.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	// Choose the root whose hit point's z sits on the side of the
	// element vertex consistent with the radius sign, matching the
	// convention that rays travel toward -z through the stack.
	useT1 := (dir.Z > 0) == (radius < 0)
	t = t0
	if useT1 {
		t = t1
	}
	if t < 0 {
		return 0, vec3.Vec3{}, false
	}
	return t, origin.Add(dir.Mul(t)), true
}

// intersectPlane intersects ray with the aperture-stop plane z=zPlane.
func intersectPlane(origin, dir vec3.Vec3, zPlane float64) (t float64, hit vec3.Vec3, ok bool) {
	if dir.Z == 0 {
		return 0, vec3.Vec3{}, false
	}
	t = (zPlane - origin.Z) / dir.Z
	if t < 0 {
		return 0, vec3.Vec3{}, false
	}
	return t, origin.Add(dir.Mul(t)), true
}

// Trace walks ray from the sensor side to the object side of the stack
// (spec §4.9). At each element it intersects the spherical surface (or
// passes straight through at the aperture stop), rejects hits outside
// the element's aperture radius, and refracts using eta = this.eta /
// (prev.eta if prev exists and non-zero else 1). It returns false on an
// aperture miss or total internal reflection.
func (s *Stack) Trace(ray vec3.Ray) (vec3.Ray, bool) {
	origin, dir := ray.Origin, ray.Direction.Normalize()

	for i := len(s.Elements) - 1; i >= 0; i-- {
		el := s.Elements[i]
		zVertex := s.zOffsets[i]

		var point vec3.Vec3
		var ok bool
		var normal vec3.Vec3

		if el.IsStop() {
			_, point, ok = intersectPlane(origin, dir, zVertex)
			normal = vec3.New(0, 0, 1)
		} else {
			_, point, ok = intersectSphere(origin, dir, el.CurvatureRadius, zVertex)
			center := vec3.New(0, 0, zVertex+el.CurvatureRadius)
			normal = point.Sub(center).Normalize()
			if el.CurvatureRadius < 0 {
				normal = normal.Neg()
			}
		}
		if !ok {
			return vec3.Ray{}, false
		}

		r := math.Hypot(point.X, point.Y)
		if r > el.ApertureRadius {
			return vec3.Ray{}, false
		}

		if el.IsStop() {
			origin = point
			continue
		}

		thisEta := el.Eta
		if thisEta == 0 {
			thisEta = 1
		}
		prevEta := 1.0
		if i > 0 && s.Elements[i-1].Eta != 0 {
			prevEta = s.Elements[i-1].Eta
		}
		relEta := thisEta / prevEta

		wi := dir.Neg()
		n := normal
		if n.Dot(wi) < 0 {
			n = n.Neg()
		}
		wt, refracted := vec3.Refract(wi, n, relEta)
		if !refracted {
			return vec3.Ray{}, false
		}

		origin = point
		dir = wt
	}

	return vec3.NewRay(origin, dir), true
}
