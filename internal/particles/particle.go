package particles

// Rand is the randomness source used for seeding and jitter.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Particle lives in surface (device pixel) space.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Radius     float64
	BaseRadius float64 // reserved for pulsing; Radius stays equal to it
}

// Point is a position in surface space.
type Point struct {
	X, Y float64
}

const (
	minRadius   = 1.0
	radiusRange = 1.5
)

// Seed creates p.ParticleCount particles spread uniformly over a width x height surface.
func Seed(width, height float64, p Profile, rng Rand) []Particle {
	if p.ParticleCount <= 0 {
		return nil
	}
	out := make([]Particle, p.ParticleCount)
	for i := range out {
		r := rng.Float64()*radiusRange + minRadius
		out[i] = Particle{
			X:          rng.Float64() * width,
			Y:          rng.Float64() * height,
			VX:         (rng.Float64() - 0.5) * p.BaseSpeed,
			VY:         (rng.Float64() - 0.5) * p.BaseSpeed,
			Radius:     r,
			BaseRadius: r,
		}
	}
	return out
}
