package interaction

import (
	"math"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/sampler"
	"github.com/tholcomb/raydiant/pkg/texture"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

// NewEnvLight builds an Interaction of KindEnvLight over a latitude-
// longitude environment texture, importance-sampled by a Discrete2D
// weighted by texture.max_element * sin(pi*(row+0.5)/h) (spec §4.4.7).
func NewEnvLight(tex *texture.Texture, rotation float64) *Interaction {
	weights := make([]float64, tex.Width*tex.Height)
	for row := 0; row < tex.Height; row++ {
		sinTheta := math.Sin(math.Pi * (float64(row) + 0.5) / float64(tex.Height))
		for col := 0; col < tex.Width; col++ {
			rgb := tex.RGB[row*tex.Width+col]
			weights[row*tex.Width+col] = rgb.MaxElement() * sinTheta
		}
	}
	dist := sampler.NewDiscrete2D(weights, tex.Width, tex.Height)

	return &Interaction{
		Kind:        KindEnvLight,
		EnvTex:      tex,
		EnvDist:     dist,
		EnvRotation: rotation,
	}
}

// envUVToDir maps (u,v) in [0,1)^2 to the world direction wo and returns
// its polar angle theta (spec §4.4.7): phi = 2*pi*u + rotation, theta =
// pi*v, wo = (sin(theta)sin(phi), cos(theta), sin(theta)cos(phi)).
func envUVToDir(u, v, rotation float64) (wo vec3.Vec3, theta float64) {
	phi := 2*math.Pi*u + rotation
	theta = math.Pi * v
	sinTheta := math.Sin(theta)
	wo = vec3.New(sinTheta*math.Sin(phi), math.Cos(theta), sinTheta*math.Cos(phi))
	return wo, theta
}

// envDirToUV is the inverse of envUVToDir, used to look up emitted
// radiance for a given direction (spec §4.4.7's Eval contract).
func (ia *Interaction) envDirToUV(dir vec3.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, dir.Y)))
	phi := math.Atan2(dir.X, dir.Z) - ia.EnvRotation

	v = theta / math.Pi
	u = phi / (2 * math.Pi)
	u -= math.Floor(u)
	return u, v
}

func (ia *Interaction) sampleEnvLight(rng *sampler.Sampler, shadingSurface geometry.SurfaceInteraction) (LightSampleResult, bool) {
	if ia.EnvDist == nil {
		return LightSampleResult{}, false
	}

	u1, v1 := rng.U2()
	ju, jv := rng.U2()
	u, v := ia.EnvDist.Sample(u1, v1, ju, jv)

	wo, theta := envUVToDir(u, v, ia.EnvRotation)

	cosAtShading := shadingSurface.Normal.Dot(wo)
	if cosAtShading <= 0 {
		return LightSampleResult{}, false
	}

	pdf := ia.pdfEnvLight(shadingSurface.Normal, wo)
	if pdf <= 0 {
		return LightSampleResult{}, false
	}
	_ = theta

	return LightSampleResult{
		Wo:       wo,
		Distance: math.Inf(1),
		Le:       ia.envRadiance(wo),
		PDF:      pdf,
	}, true
}

// pdfEnvLight is Discrete2D.pmf(u,v) / (2*pi^2*sin(theta)*|wo.n|), per
// spec §4.4.7.
func (ia *Interaction) pdfEnvLight(normal, wo vec3.Vec3) float64 {
	if ia.EnvDist == nil {
		return 0
	}
	u, v := ia.envDirToUV(wo)
	theta := math.Pi * v
	sinTheta := math.Sin(theta)
	cosAtShading := math.Abs(normal.Dot(wo))
	if sinTheta <= 0 || cosAtShading <= 0 {
		return 0
	}
	pmf := ia.EnvDist.PMF(u, v)
	return pmf / (2 * math.Pi * math.Pi * sinTheta * cosAtShading)
}

// envRadiance looks up the environment texture at the (u,v) derived from
// dir, the world direction the camera/path ray is looking along (spec
// §4.4.7 Eval). Used both by SampleLight (dir is the sampled wo) and by
// the integrator when a ray escapes the scene (dir is the ray's forward
// direction).
func (ia *Interaction) envRadiance(dir vec3.Vec3) vec3.Vec3 {
	if ia.EnvTex == nil {
		return vec3.Vec3{}
	}
	u, v := ia.envDirToUV(dir)
	return ia.EnvTex.Eval(vec3.NewVec2(u, v))
}

// EnvRadiance exposes envRadiance for the scene's miss-ray handling
// (spec §4.8's synthetic environment-light hit).
func (ia *Interaction) EnvRadiance(rayDirection vec3.Vec3) vec3.Vec3 {
	return ia.envRadiance(rayDirection)
}
