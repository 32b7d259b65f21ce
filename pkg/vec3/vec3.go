// Package vec3 provides 3-vector arithmetic, rays, and the reflect/refract
// helpers shared by every other package in the tracer.
package vec3

import (
	"fmt"
	"math"
)

// Vec3 is used interchangeably as a point, a direction, and an RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// New creates a new Vec3.
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Splat returns a vector with all three components equal to v.
func Splat(v float64) Vec3 {
	return Vec3{X: v, Y: v, Z: v}
}

func (v Vec3) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z)
}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// MulVec returns the component-wise (Hadamard) product of two vectors.
func (v Vec3) MulVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// DivVec returns the component-wise quotient of two vectors.
func (v Vec3) DivVec(o Vec3) Vec3 { return Vec3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// AbsDot returns the absolute value of the dot product of two vectors.
func (v Vec3) AbsDot(o Vec3) float64 { return math.Abs(v.Dot(o)) }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared magnitude of the vector.
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Length returns the magnitude of the vector.
func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Normalize returns a unit vector in the same direction; the zero vector
// normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1.0 / l)
}

// Axis returns the component along the given axis (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// MaxElement returns the largest of the three components.
func (v Vec3) MaxElement() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Clamp clamps each component to [lo, hi].
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: math.Max(lo, math.Min(hi, v.X)),
		Y: math.Max(lo, math.Min(hi, v.Y)),
		Z: math.Max(lo, math.Min(hi, v.Z)),
	}
}

// Luminance returns the Rec. 709 relative luminance of the vector treated
// as an RGB color.
func (v Vec3) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Reflect reflects w about the normal n: reflect(w, n) = 2(w·n)n - w.
// w is expected to point away from the surface (e.g. -incident direction).
func Reflect(w, n Vec3) Vec3 {
	return n.Mul(2 * w.Dot(n)).Sub(w)
}

// Refract refracts wi (pointing away from the surface, toward the side wi
// came from) through a surface with normal n (pointing into the same
// hemisphere as wi) given the relative index of refraction eta =
// eta_i/eta_t. It returns false on total internal reflection.
func Refract(wi, n Vec3, eta float64) (Vec3, bool) {
	cosThetaI := wi.Dot(n)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return Vec3{}, false // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Neg().Mul(eta).Add(n.Mul(eta*cosThetaI - cosThetaT))
	return wt.Normalize(), true
}

// Barycentric interpolates three values by barycentric coordinates (u, v)
// with the implicit weight for p1 equal to 1-u-v.
func Barycentric(p1, p2, p3 Vec3, u, v float64) Vec3 {
	return p1.Mul(1 - u - v).Add(p2.Mul(u)).Add(p3.Mul(v))
}

// Vec2 is a 2-D vector, used for texture coordinates and film-plane samples.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2.
func NewVec2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns the sum of two Vec2 values.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Mul returns the Vec2 scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Basis is a right-handed orthonormal basis (tangent, bitangent, normal).
type Basis struct {
	T, B, N Vec3
}

// NewBasis builds a right-handed orthonormal basis around the unit
// vector n, using Duff et al.'s branchless construction.
func NewBasis(n Vec3) Basis {
	sign := math.Copysign(1.0, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	t := Vec3{1 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	bt := Vec3{b, sign + n.Y*n.Y*a, -n.Y}
	return Basis{T: t, B: bt, N: n}
}

// ToWorld transforms a local-space direction (x,y,z measured against the
// basis' tangent/bitangent/normal) into world space.
func (b Basis) ToWorld(local Vec3) Vec3 {
	return b.T.Mul(local.X).Add(b.B.Mul(local.Y)).Add(b.N.Mul(local.Z))
}

// ToLocal transforms a world-space direction into the basis' local frame.
func (b Basis) ToLocal(world Vec3) Vec3 {
	return Vec3{X: world.Dot(b.T), Y: world.Dot(b.B), Z: world.Dot(b.N)}
}

// SameHemisphere reports whether two directions measured against normal n
// lie in the same hemisphere (including the degenerate zero case).
func SameHemisphere(wi, wo, n Vec3) bool {
	return math.Signbit(wi.Dot(n)) == math.Signbit(wo.Dot(n))
}

// Ray is a parametric ray; its direction is not necessarily unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray with the given origin and (not necessarily unit)
// direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
