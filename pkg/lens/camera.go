package lens

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// Pinhole is the pinhole camera variant (spec §4.9 "Pinhole"). It
// implements interaction.CameraSampler by duck typing, no import of
// pkg/interaction needed here.
type Pinhole struct {
	Eye         vec3.Vec3
	Basis       vec3.Basis // N = backward (eye minus lookAt); the camera looks along -N, matching the formula below
	Aspect      float64
	TanHalfVFov float64
}

// NewPinhole builds a Pinhole camera looking from eye toward lookAt,
// with up as the world up reference.
func NewPinhole(eye, lookAt, up vec3.Vec3, vfovDegrees, aspect float64) *Pinhole {
	w := eye.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	basis := vec3.Basis{T: u, B: w.Cross(u), N: w}
	return &Pinhole{
		Eye:         eye,
		Basis:       basis,
		Aspect:      aspect,
		TanHalfVFov: math.Tan(vfovDegrees * math.Pi / 180 / 2),
	}
}

// SampleCamera produces a ray from the eye with direction
// -normalize(aspect*tan(vfov/2)*(2u-1), tan(vfov/2)*(2v-1), 1) and
// weight 1 (spec §4.9).
func (c *Pinhole) SampleCamera(rng *sampler.Sampler, u, v float64) (vec3.Ray, vec3.Vec3, bool) {
	local := vec3.New(
		c.Aspect*c.TanHalfVFov*(2*u-1),
		c.TanHalfVFov*(2*v-1),
		1,
	).Neg()
	dir := c.Basis.ToWorld(local).Normalize()
	return vec3.NewRay(c.Eye, dir), vec3.New(1, 1, 1), true
}

// RealisticLens is the multi-element lens camera variant (spec §4.9).
type RealisticLens struct {
	Eye    vec3.Vec3
	Basis  vec3.Basis // N = backward (eye minus lookAt); lens-local -z points from the sensor through the lens toward the scene
	Aspect float64

	Stack        *Stack
	SensorRadius float64
	Pupils       *ExitPupils
	Sensitivity  float64
}

// NewRealisticLens builds a RealisticLens camera: it focuses the stack
// at focusDistance, precomputes the exit-pupil table for the sensor
// radius derived from sensorDiagonalMM and aspect, and stores the
// camera basis.
func NewRealisticLens(elements []Element, eye, lookAt, up vec3.Vec3, aspect, focusDistance, sensorDiagonalMM, sensitivity float64, rng *sampler.Sampler) *RealisticLens {
	w := eye.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	basis := vec3.Basis{T: u, B: w.Cross(u), N: w}

	raw := NewStack(elements)
	filmDistance := raw.Autofocus(focusDistance)
	stack := raw.withFilmDistance(filmDistance)

	sensorDiagonal := sensorDiagonalMM * 0.001
	halfHeight := sensorDiagonal / 2 / math.Sqrt(1+aspect*aspect)
	halfWidth := halfHeight * aspect
	sensorRadius := math.Hypot(halfWidth, halfHeight)

	pupils := Precompute(stack, sensorRadius, rng)

	return &RealisticLens{
		Eye:          eye,
		Basis:        basis,
		Aspect:       aspect,
		Stack:        stack,
		SensorRadius: sensorRadius,
		Pupils:       pupils,
		Sensitivity:  sensitivity,
	}
}

func (c *RealisticLens) pixelToSensor(u, v float64) vec3.Vec2 {
	halfHeight := c.SensorRadius / math.Sqrt(1+c.Aspect*c.Aspect)
	halfWidth := halfHeight * c.Aspect
	return vec3.NewVec2((2*u-1)*halfWidth, (2*v-1)*halfHeight)
}

// SampleCamera converts a pixel (u,v) to a sensor-plane point, selects
// the exit-pupil bin by radial distance, samples a point in the bin's
// bound rotated to the sensor point's radial angle, traces the initial
// ray through the stack, and transforms the result to world space (spec
// §4.9). The weight is cos^4(theta) * bin_area / (lens_t +
// distance_to_sensor)^2 * sensitivity.
func (c *RealisticLens) SampleCamera(rng *sampler.Sampler, u, v float64) (vec3.Ray, vec3.Vec3, bool) {
	sensorXY := c.pixelToSensor(u, v)
	radius := math.Hypot(sensorXY.X, sensorXY.Y)

	bound := c.Pupils.BoundForRadius(radius)
	if !bound.Valid {
		return vec3.Ray{}, vec3.Vec3{}, false
	}

	bx := bound.MinX + rng.U()*(bound.MaxX-bound.MinX)
	by := bound.MinY + rng.U()*(bound.MaxY-bound.MinY)

	phi := math.Atan2(sensorXY.Y, sensorXY.X)
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	pupilX := bx*cosPhi - by*sinPhi
	pupilY := bx*sinPhi + by*cosPhi

	_, lastZ := c.Stack.LastElement()
	sensorPoint := vec3.New(sensorXY.X, sensorXY.Y, 0)
	target := vec3.New(pupilX, pupilY, lastZ)
	dir := target.Sub(sensorPoint)

	out, ok := c.Stack.Trace(vec3.NewRay(sensorPoint, dir))
	if !ok {
		return vec3.Ray{}, vec3.Vec3{}, false
	}

	cosTheta := dir.Normalize().Z
	if cosTheta < 0 {
		cosTheta = -cosTheta
	}
	cos4 := cosTheta * cosTheta * cosTheta * cosTheta
	distToSensor := dir.Length()
	lensT := c.Stack.Length()
	denom := (lensT + distToSensor) * (lensT + distToSensor)
	if denom <= 0 {
		return vec3.Ray{}, vec3.Vec3{}, false
	}
	weight := cos4 * bound.Area() / denom * c.Sensitivity

	worldOrigin := c.Eye.Add(c.Basis.ToWorld(out.Origin))
	worldDir := c.Basis.ToWorld(out.Direction).Normalize()
	return vec3.NewRay(worldOrigin, worldDir), vec3.New(weight, weight, weight), true
}
