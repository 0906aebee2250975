package beamfx

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RandomSource supplies every random draw the beam simulation makes.
// Injected rather than global so tests can script exact sequences and
// independent pools can run deterministic, isolated streams.
type RandomSource interface {
	// Float32 returns a uniform draw in [0, 1).
	Float32() float32
	// Range returns a uniform draw in [min, max).
	Range(min, max float32) float32
	// UnitVec3 returns a vector uniformly distributed over the unit
	// sphere surface.
	UnitVec3() mgl32.Vec3
}

type mathRandSource struct {
	r *rand.Rand
}

// NewRandomSource returns a RandomSource backed by math/rand with the
// given seed.
func NewRandomSource(seed int64) RandomSource {
	return &mathRandSource{r: rand.New(rand.NewSource(seed))}
}

func (s *mathRandSource) Float32() float32 {
	return s.r.Float32()
}

func (s *mathRandSource) Range(min, max float32) float32 {
	return lerp(min, max, s.r.Float32())
}

// Uniform z plus uniform azimuth gives a uniform distribution over the
// sphere surface.
func (s *mathRandSource) UnitVec3() mgl32.Vec3 {
	z := 2*s.r.Float32() - 1
	phi := 2 * math32.Pi * s.r.Float32()
	r := math32.Sqrt(1 - z*z)
	return mgl32.Vec3{r * math32.Cos(phi), r * math32.Sin(phi), z}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
