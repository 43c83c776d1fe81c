package particles

import "math"

// PointerForce returns the magnitude of the pointer pull on a particle at
// distance d. It is zero outside radius and grows quadratically toward the pointer.
func PointerForce(d, radius, force float64) float64 {
	if radius <= 0 || d >= radius {
		return 0
	}
	f := (radius - d) / radius
	return f * f * force
}

// Step advances one particle by a single tick on a width x height surface.
// Forces, jitter, damping and the speed clamp are applied before integration;
// wraparound comes last and is checked per axis.
func Step(p *Particle, pointer Point, width, height float64, prof Profile, rng Rand) {
	dx := pointer.X - p.X
	dy := pointer.Y - p.Y
	d := math.Sqrt(dx*dx + dy*dy)

	if f := PointerForce(d, prof.MouseRadius, prof.MouseForce); f > 0 {
		angle := math.Atan2(dy, dx)
		p.VX += math.Cos(angle) * f
		p.VY += math.Sin(angle) * f
	}

	p.VX += (rng.Float64() - 0.5) * prof.NaturalMovement
	p.VY += (rng.Float64() - 0.5) * prof.NaturalMovement

	p.VX *= prof.Friction
	p.VY *= prof.Friction

	if speed := math.Sqrt(p.VX*p.VX + p.VY*p.VY); speed > prof.MaxSpeed {
		scale := prof.MaxSpeed / speed
		p.VX *= scale
		p.VY *= scale
	}

	p.X += p.VX
	p.Y += p.VY

	p.X = wrap(p.X, width, prof.BufferZone)
	p.Y = wrap(p.Y, height, prof.BufferZone)
}

// wrap moves v to the opposite margin once it leaves [-buffer, limit+buffer].
func wrap(v, limit, buffer float64) float64 {
	switch {
	case v < -buffer:
		return limit + buffer
	case v > limit+buffer:
		return -buffer
	}
	return v
}
