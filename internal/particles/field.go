package particles

import (
	"context"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// State is the scheduling state of a Field.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Host is the environment a Field is mounted into.
type Host interface {
	SurfaceFactory
	// ContainerSize is the container's size in CSS pixels.
	ContainerSize() (width, height int)
}

// Option configures a Field at mount time.
type Option func(*Field)

// WithRand replaces the randomness source used for seeding and jitter.
func WithRand(r Rand) Option {
	return func(f *Field) { f.rng = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(f *Field) { f.log = l }
}

// WithClock replaces time.Now for throttling and resume timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Field) { f.clock = now }
}

// WithTint sets the colour of particles and links; alpha is ignored.
func WithTint(c color.NRGBA) Option {
	return func(f *Field) { f.tint = c }
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Field owns a particle pool and the surface it is drawn on.
//
// A Field is driven from a single goroutine: Frame, Resize, PointerMoved,
// SetVisible and Unmount must not be called concurrently.
type Field struct {
	host  Host
	prof  Profile
	rng   Rand
	log   *zap.Logger
	clock func() time.Time
	tint  color.NRGBA

	state     State
	visible   bool
	unmounted bool

	surface       Surface
	width, height float64
	particles     []Particle
	pointer       Point
	last          time.Time
	steps         uint64

	pointerEvents *Throttle[Point]
	resizeEvents  *Throttle[struct{}]
}

// Mount measures the host container, establishes a surface and seeds the
// pool. A Field that cannot get a surface stays Stopped and does nothing
// until a later Resize succeeds; it never returns an error.
func Mount(host Host, prof Profile, opts ...Option) *Field {
	f := &Field{
		host:    host,
		prof:    prof,
		rng:     globalRand{},
		log:     zap.NewNop(),
		clock:   time.Now,
		tint:    DefaultTint,
		visible: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.pointerEvents = NewThrottle(prof.PointerThrottle, func(p Point) { f.pointer = p })
	f.resizeEvents = NewThrottle(prof.ResizeThrottle, func(struct{}) { f.reestablish() })

	if err := prof.Validate(); err != nil {
		f.log.Warn("particle field disabled", zap.Error(err))
		f.unmounted = true
		return f
	}

	f.reestablish()
	return f
}

// establish replaces the surface with one sized to the container and reseeds.
// It reports whether a surface is now available.
func (f *Field) establish() bool {
	f.releaseSurface()

	w, h := f.host.ContainerSize()
	if w <= 0 || h <= 0 {
		f.log.Debug("container has no area yet", zap.Int("width", w), zap.Int("height", h))
		return false
	}

	sw := int(math.Round(float64(w) * f.prof.DPR))
	sh := int(math.Round(float64(h) * f.prof.DPR))
	s, err := f.host.NewSurface(sw, sh)
	if err != nil || s == nil {
		f.log.Warn("drawing surface unavailable", zap.Int("width", sw), zap.Int("height", sh), zap.Error(err))
		return false
	}

	f.surface = s
	f.width, f.height = float64(sw), float64(sh)
	f.particles = Seed(f.width, f.height, f.prof, f.rng)
	f.log.Debug("surface established",
		zap.Int("width", sw),
		zap.Int("height", sh),
		zap.Int("particles", len(f.particles)),
	)
	return true
}

func (f *Field) reestablish() {
	if !f.establish() {
		f.state = Stopped
		return
	}
	if f.visible {
		f.state = Running
		f.last = f.clock()
		return
	}
	f.state = Paused
}

func (f *Field) releaseSurface() {
	if f.surface != nil {
		f.surface.Release()
		f.surface = nil
	}
	f.particles = nil
	f.width, f.height = 0, 0
}

// Frame is the per-frame callback. It applies due pointer and resize events
// and, when Running and at least one update interval has passed since the
// previous step, advances every particle once and redraws. It reports
// whether a step ran.
func (f *Field) Frame(now time.Time) bool {
	if f.unmounted {
		return false
	}
	f.resizeEvents.Flush(now)
	f.pointerEvents.Flush(now)

	if f.state != Running || now.Sub(f.last) < f.prof.UpdateInterval {
		return false
	}

	for i := range f.particles {
		Step(&f.particles[i], f.pointer, f.width, f.height, f.prof, f.rng)
	}
	Draw(f.surface, f.particles, f.prof, f.tint)
	f.last = now
	f.steps++
	return true
}

// SetVisible pauses or resumes scheduling. Resuming restarts the interval
// from the current time so no catch-up steps are taken.
func (f *Field) SetVisible(visible bool) {
	if f.unmounted || f.visible == visible {
		return
	}
	f.visible = visible

	switch {
	case !visible && f.state == Running:
		f.state = Paused
		f.log.Debug("particle field paused")
	case visible && f.state == Paused:
		f.state = Running
		f.last = f.clock()
		f.log.Debug("particle field resumed")
	}
}

// Resize notes that the container may have changed size. Notifications are
// throttled; the surface is rebuilt and the pool reseeded when one applies.
func (f *Field) Resize() {
	if f.unmounted {
		return
	}
	f.resizeEvents.Offer(f.clock(), struct{}{})
}

// PointerMoved records the pointer in CSS pixels relative to the container.
func (f *Field) PointerMoved(x, y float64) {
	if f.unmounted {
		return
	}
	f.pointerEvents.Offer(f.clock(), Point{X: x * f.prof.DPR, Y: y * f.prof.DPR})
}

// Unmount stops the field for good and releases its surface.
func (f *Field) Unmount() {
	if f.unmounted && f.surface == nil {
		return
	}
	f.unmounted = true
	f.state = Stopped
	f.pointerEvents.Cancel()
	f.resizeEvents.Cancel()
	f.releaseSurface()
	f.log.Debug("particle field unmounted", zap.Uint64("steps", f.steps))
}

// Run drives the field from frames until ctx is cancelled or frames is
// closed, calling after (when non-nil) following every applied step. The
// field is unmounted on return.
func (f *Field) Run(ctx context.Context, frames <-chan time.Time, after func(*Field) error) error {
	defer f.Unmount()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return ctx.Err()
			}
			if !f.Frame(now) || after == nil {
				continue
			}
			if err := after(f); err != nil {
				return err
			}
		}
	}
}

func (f *Field) State() State { return f.state }
func (f *Field) Profile() Profile { return f.prof }
func (f *Field) Visible() bool { return f.visible }
func (f *Field) Pointer() Point { return f.pointer }
func (f *Field) Steps() uint64 { return f.steps }
func (f *Field) Surface() Surface { return f.surface }
func (f *Field) Tint() color.NRGBA { return f.tint }

// Particles returns a copy of the current pool.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}
