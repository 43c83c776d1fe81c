package particles

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MobileBreakpoint is the viewport width (CSS px) below which the narrow profile applies.
const MobileBreakpoint = 768

const (
	reducedMotionCount = 30
	narrowMaxDPR       = 2.0
	wideMaxDPR         = 3.0
)

// Signals are the device hints a profile is derived from.
type Signals struct {
	ReducedMotion    bool
	ViewportWidth    int
	DevicePixelRatio float64
}

// Profile is the device-dependent simulation configuration.
// It is derived once and treated as immutable afterwards.
type Profile struct {
	ParticleCount      int
	ConnectionDistance float64
	MouseRadius        float64
	MouseForce         float64
	BaseSpeed          float64
	Friction           float64
	ParticleAlpha      float64
	ConnectionAlpha    float64
	MaxSpeed           float64
	NaturalMovement    float64
	BufferZone         float64
	UpdateInterval     time.Duration

	// Narrow is set when the profile was derived for a viewport below MobileBreakpoint.
	Narrow bool
	// DPR is the clamped device pixel ratio used to size surfaces.
	DPR float64

	PointerThrottle time.Duration
	ResizeThrottle  time.Duration
}

// DeriveProfile maps device signals to a profile. It never fails: unusable
// inputs fall back to defaults.
func DeriveProfile(s Signals) Profile {
	narrow := s.ViewportWidth < MobileBreakpoint

	dpr := s.DevicePixelRatio
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}

	var p Profile
	if narrow {
		p = Profile{
			ParticleCount:      50,
			ConnectionDistance: 80,
			MouseRadius:        140,
			MouseForce:         0.3,
			BaseSpeed:          0.3,
			ParticleAlpha:      0.25,
			ConnectionAlpha:    0.15,
			MaxSpeed:           4,
			NaturalMovement:    0.03,
			UpdateInterval:     time.Second / 30,
			DPR:                math.Min(dpr, narrowMaxDPR),
			PointerThrottle:    32 * time.Millisecond,
		}
	} else {
		p = Profile{
			ParticleCount:      150,
			ConnectionDistance: 120,
			MouseRadius:        200,
			MouseForce:         0.5,
			BaseSpeed:          0.5,
			ParticleAlpha:      0.35,
			ConnectionAlpha:    0.2,
			MaxSpeed:           6,
			NaturalMovement:    0.05,
			UpdateInterval:     time.Second / 60,
			DPR:                math.Min(dpr, wideMaxDPR),
			PointerThrottle:    16 * time.Millisecond,
		}
	}
	p.Narrow = narrow
	p.Friction = 0.97
	p.BufferZone = 50
	p.ResizeThrottle = 250 * time.Millisecond

	if s.ReducedMotion {
		p.ParticleCount = reducedMotionCount
	}
	return p
}

// ErrInvalidProfile is wrapped by Validate failures.
var ErrInvalidProfile = errors.New("invalid profile")

// Validate rejects profiles that cannot drive a simulation. Derived profiles
// always pass; this guards values overridden from configuration.
func (p Profile) Validate() error {
	switch {
	case p.ParticleCount < 0:
		return fmt.Errorf("%w: negative particle count %d", ErrInvalidProfile, p.ParticleCount)
	case p.Friction <= 0 || p.Friction > 1:
		return fmt.Errorf("%w: friction %v outside (0,1]", ErrInvalidProfile, p.Friction)
	case p.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed %v must be positive", ErrInvalidProfile, p.MaxSpeed)
	case p.ConnectionDistance < 0 || p.MouseRadius < 0 || p.BufferZone < 0:
		return fmt.Errorf("%w: distances must not be negative", ErrInvalidProfile)
	case p.UpdateInterval <= 0:
		return fmt.Errorf("%w: update interval %v must be positive", ErrInvalidProfile, p.UpdateInterval)
	case p.DPR <= 0:
		return fmt.Errorf("%w: device pixel ratio %v must be positive", ErrInvalidProfile, p.DPR)
	}
	return nil
}
