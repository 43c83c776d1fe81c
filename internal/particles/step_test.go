package particles

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	prof := DeriveProfile(Signals{ViewportWidth: 1280, DevicePixelRatio: 1})
	rng := rand.New(rand.NewPCG(1, 2))

	ps := Seed(800, 600, prof, rng)
	require.Len(t, ps, prof.ParticleCount)

	bound := prof.BaseSpeed * math.Sqrt2 / 2
	for i, p := range ps {
		assert.GreaterOrEqual(t, p.X, 0.0, "particle %d", i)
		assert.Less(t, p.X, 800.0, "particle %d", i)
		assert.GreaterOrEqual(t, p.Y, 0.0, "particle %d", i)
		assert.Less(t, p.Y, 600.0, "particle %d", i)
		assert.LessOrEqual(t, math.Hypot(p.VX, p.VY), bound+1e-12, "particle %d", i)
		assert.GreaterOrEqual(t, p.Radius, 1.0)
		assert.Less(t, p.Radius, 2.5)
		assert.Equal(t, p.Radius, p.BaseRadius)
	}
}

func TestSeedExtremes(t *testing.T) {
	prof := still()
	prof.ParticleCount = 3

	low := Seed(100, 100, prof, constRand(0))
	require.Len(t, low, 3)
	assert.Equal(t, Particle{X: 0, Y: 0, VX: -prof.BaseSpeed / 2, VY: -prof.BaseSpeed / 2, Radius: 1, BaseRadius: 1}, low[0])

	prof.ParticleCount = 0
	assert.Empty(t, Seed(100, 100, prof, constRand(0)))
}

func TestPointerForce(t *testing.T) {
	const radius, force = 200.0, 0.5

	assert.Zero(t, PointerForce(radius, radius, force))
	assert.Zero(t, PointerForce(radius+1, radius, force))
	assert.Zero(t, PointerForce(10, 0, force))
	assert.InDelta(t, force, PointerForce(0, radius, force), 1e-12)
	assert.InDelta(t, 0.25*force, PointerForce(radius/2, radius, force), 1e-12)

	prev := 0.0
	for d := radius - 1; d >= 0; d-- {
		f := PointerForce(d, radius, force)
		assert.Greater(t, f, prev, "distance %v", d)
		prev = f
	}
}

func TestStepPullsTowardPointer(t *testing.T) {
	prof := still()
	prof.MouseRadius = 200
	prof.MouseForce = 0.5

	p := Particle{X: 100, Y: 100}
	Step(&p, Point{X: 150, Y: 100}, 1000, 1000, prof, constRand(0.5))

	want := PointerForce(50, 200, 0.5)
	assert.InDelta(t, want, p.VX, 1e-12)
	assert.InDelta(t, 0, p.VY, 1e-12)
	assert.InDelta(t, 100+want, p.X, 1e-12)
}

func TestStepOutsideRadiusHasNoForce(t *testing.T) {
	prof := still()
	prof.MouseRadius = 20
	prof.MouseForce = 5

	p := Particle{X: 100, Y: 100, VX: 1}
	Step(&p, Point{X: 300, Y: 300}, 1000, 1000, prof, constRand(0.5))
	assert.Equal(t, Particle{X: 101, Y: 100, VX: 1}, p)
}

func TestStepClampsSpeedPreservingDirection(t *testing.T) {
	prof := still()
	prof.MaxSpeed = 5

	p := Particle{X: 500, Y: 500, VX: 30, VY: 40}
	Step(&p, Point{}, 1000, 1000, prof, constRand(0.5))

	assert.InDelta(t, 5, math.Hypot(p.VX, p.VY), 1e-9)
	assert.InDelta(t, 3, p.VX, 1e-9)
	assert.InDelta(t, 4, p.VY, 1e-9)
	assert.InDelta(t, 503, p.X, 1e-9)
	assert.InDelta(t, 504, p.Y, 1e-9)
}

func TestStepAppliesFriction(t *testing.T) {
	prof := still()
	prof.Friction = 0.5

	p := Particle{X: 10, Y: 10, VX: 2, VY: -2}
	Step(&p, Point{}, 100, 100, prof, constRand(0.5))
	assert.Equal(t, 1.0, p.VX)
	assert.Equal(t, -1.0, p.VY)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name                string
		v, limit, buffer, w float64
	}{
		{"inside", 10, 200, 50, 10},
		{"on low edge", -50, 200, 50, -50},
		{"past low edge", -51, 200, 50, 250},
		{"far past low edge", -60, 200, 50, 250},
		{"on high edge", 250, 200, 50, 250},
		{"past high edge", 251, 200, 50, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.w, wrap(tt.v, tt.limit, tt.buffer))
		})
	}
}

func TestStepWrapsBothAxes(t *testing.T) {
	prof := still()

	p := Particle{X: -49, Y: 249, VX: -2, VY: 2}
	Step(&p, Point{X: -1e6, Y: -1e6}, 200, 200, prof, constRand(0.5))
	assert.Equal(t, 250.0, p.X)
	assert.Equal(t, -50.0, p.Y)
}

func TestStepInvariantsHold(t *testing.T) {
	prof := DeriveProfile(Signals{ViewportWidth: 1280, DevicePixelRatio: 1})
	rng := rand.New(rand.NewPCG(7, 11))
	const w, h = 640.0, 480.0

	ps := Seed(w, h, prof, rng)
	pointer := Point{X: w / 2, Y: h / 2}
	for tick := 0; tick < 500; tick++ {
		if tick%50 == 0 {
			pointer = Point{X: rng.Float64() * w, Y: rng.Float64() * h}
		}
		for i := range ps {
			Step(&ps[i], pointer, w, h, prof, rng)

			p := ps[i]
			require.LessOrEqual(t, math.Hypot(p.VX, p.VY), prof.MaxSpeed+1e-9)
			require.GreaterOrEqual(t, p.X, -prof.BufferZone)
			require.LessOrEqual(t, p.X, w+prof.BufferZone)
			require.GreaterOrEqual(t, p.Y, -prof.BufferZone)
			require.LessOrEqual(t, p.Y, h+prof.BufferZone)
		}
	}
}
