package lens

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// pupilBins is the number of radial shells the sensor radius is
// partitioned into (spec §4.9: "partitions the sensor radius into 64
// bins").
const pupilBins = 64

// pupilRaysPerBin is the number of rays traced per radial shell when
// estimating its exit-pupil bound (spec §4.9: "~4096 rays").
const pupilRaysPerBin = 4096

// PupilBound is the axis-aligned bound, in the last element's local xy
// plane, of back-element entry points that successfully cleared the
// whole stack from a sensor point at the shell's representative radius.
// A shell that received zero hits has Valid = false.
type PupilBound struct {
	Valid              bool
	MinX, MaxX         float64
	MinY, MaxY         float64
}

// Area returns the bound's rectangle area, used by the sample weight's
// bin_area factor.
func (b PupilBound) Area() float64 {
	if !b.Valid {
		return 0
	}
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// ExitPupils is the precomputed table of per-shell exit-pupil bounds for
// one sensor radius.
type ExitPupils struct {
	SensorRadius float64
	Bounds       [pupilBins]PupilBound
}

// Precompute builds the exit-pupil table (spec §4.9): for each of the 64
// radial shells, it traces pupilRaysPerBin rays from a representative
// sensor point on the +x axis at the shell's mid radius toward uniform
// random points on the last
// element's aperture disk, and bounds the entry points of the rays that
// clear the whole stack.
func Precompute(stack *Stack, sensorRadius float64, rng *sampler.Sampler) *ExitPupils {
	lastEl, lastZ := stack.LastElement()
	pupils := &ExitPupils{SensorRadius: sensorRadius}

	for bin := 0; bin < pupilBins; bin++ {
		r0 := sensorRadius * float64(bin) / pupilBins
		r1 := sensorRadius * float64(bin+1) / pupilBins
		rMid := 0.5 * (r0 + r1)
		sensorPoint := vec3.New(rMid, 0, 0)

		var b PupilBound
		for i := 0; i < pupilRaysPerBin; i++ {
			u1, u2 := rng.U2()
			theta := 2 * math.Pi * u1
			radius := lastEl.ApertureRadius * math.Sqrt(u2)
			target := vec3.New(radius*math.Cos(theta), radius*math.Sin(theta), lastZ)

			ray := vec3.NewRay(sensorPoint, target.Sub(sensorPoint))
			if _, ok := stack.Trace(ray); !ok {
				continue
			}

			if !b.Valid {
				b = PupilBound{Valid: true, MinX: target.X, MaxX: target.X, MinY: target.Y, MaxY: target.Y}
				continue
			}
			b.MinX = math.Min(b.MinX, target.X)
			b.MaxX = math.Max(b.MaxX, target.X)
			b.MinY = math.Min(b.MinY, target.Y)
			b.MaxY = math.Max(b.MaxY, target.Y)
		}
		pupils.Bounds[bin] = b
	}
	return pupils
}

// BoundForRadius clamps radius into [0, SensorRadius] and returns the
// bound for the shell it falls in.
func (e *ExitPupils) BoundForRadius(radius float64) PupilBound {
	if e.SensorRadius <= 0 {
		return PupilBound{}
	}
	frac := radius / e.SensorRadius
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	bin := int(frac * pupilBins)
	if bin >= pupilBins {
		bin = pupilBins - 1
	}
	return e.Bounds[bin]
}
