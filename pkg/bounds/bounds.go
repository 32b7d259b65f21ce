// Package bounds implements axis-aligned bounding boxes and the ray-slab
// intersection test used throughout the BVH.
package bounds

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Bounds is an axis-aligned bounding box. The empty Bounds (zero value is
// NOT empty; use Empty()) has Min = +inf and Max = -inf so that unioning
// it with any point or box yields that point or box.
type Bounds struct {
	Min, Max vec3.Vec3
}

// Empty returns the canonical empty bounds.
func Empty() Bounds {
	inf := math.Inf(1)
	return Bounds{Min: vec3.Splat(inf), Max: vec3.Splat(-inf)}
}

// New returns the bounds spanning min and max directly (caller guarantees
// min <= max component-wise).
func New(min, max vec3.Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// UnionPoint returns the bounds extended to include p.
func (b Bounds) UnionPoint(p vec3.Vec3) Bounds {
	return Bounds{
		Min: vec3.New(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: vec3.New(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Union returns the bounds enclosing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		Min: vec3.New(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)),
		Max: vec3.New(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)),
	}
}

// Centroid returns the midpoint of the box.
func (b Bounds) Centroid() vec3.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns Max - Min.
func (b Bounds) Diagonal() vec3.Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns 2(dx*dy + dy*dz + dz*dx). A degenerate (zero-volume)
// box still has a well-defined, possibly zero, surface area.
func (b Bounds) SurfaceArea() float64 {
	d := b.Diagonal()
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (b Bounds) LongestAxis() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Axis returns the Min/Max extent of the box along the given axis (0,1,2).
func (b Bounds) Axis(axis int) (lo, hi float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// CentroidAxis returns the centroid coordinate along the given axis.
func (b Bounds) CentroidAxis(axis int) float64 {
	c := b.Centroid()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// Hit performs the branchless slab test: it returns true iff the ray's
// parametric interval [tMin, tMax] overlaps the box on all three axes.
// Direction components may be zero; 1/0 = +Inf keeps the comparisons
// correct as long as the ray origin lies within that axis' slab, exactly
// as spec §4.3 requires.
func (b Bounds) Hit(origin, direction vec3.Vec3, tMin, tMax float64) bool {
	invDirX := 1 / direction.X
	invDirY := 1 / direction.Y
	invDirZ := 1 / direction.Z

	t0 := (b.Min.X - origin.X) * invDirX
	t1 := (b.Max.X - origin.X) * invDirX
	if invDirX < 0 {
		t0, t1 = t1, t0
	}
	tMin = math.Max(tMin, t0)
	tMax = math.Min(tMax, t1)
	if tMax < tMin {
		return false
	}

	t0 = (b.Min.Y - origin.Y) * invDirY
	t1 = (b.Max.Y - origin.Y) * invDirY
	if invDirY < 0 {
		t0, t1 = t1, t0
	}
	tMin = math.Max(tMin, t0)
	tMax = math.Min(tMax, t1)
	if tMax < tMin {
		return false
	}

	t0 = (b.Min.Z - origin.Z) * invDirZ
	t1 = (b.Max.Z - origin.Z) * invDirZ
	if invDirZ < 0 {
		t0, t1 = t1, t0
	}
	tMin = math.Max(tMin, t0)
	tMax = math.Min(tMax, t1)
	return tMax >= tMin
}
