package particles

import (
	"errors"
	"image/color"
	"time"
)

// constRand always returns the same value; 0.5 yields zero jitter.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

// seqRand cycles through vals.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type line struct {
	x0, y0, x1, y1, width float64
	c                     color.NRGBA
}

type circle struct {
	cx, cy, r float64
	c         color.NRGBA
}

type recordingSurface struct {
	w, h     int
	clears   int
	lines    []line
	circles  []circle
	released bool
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Clear() {
	s.clears++
	s.lines = s.lines[:0]
	s.circles = s.circles[:0]
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	s.lines = append(s.lines, line{x0, y0, x1, y1, width, c})
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.circles = append(s.circles, circle{cx, cy, r, c})
}

func (s *recordingSurface) Release() { s.released = true }

type fakeHost struct {
	w, h     int
	fail     bool
	surfaces []*recordingSurface
}

func (h *fakeHost) ContainerSize() (int, int) { return h.w, h.h }

func (h *fakeHost) NewSurface(w, ht int) (Surface, error) {
	if h.fail {
		return nil, errors.New("no 2d context")
	}
	s := &recordingSurface{w: w, h: ht}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) current() *recordingSurface {
	if len(h.surfaces) == 0 {
		return nil
	}
	return h.surfaces[len(h.surfaces)-1]
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// still is a profile with no forces so particles keep their velocity.
func still() Profile {
	p := DeriveProfile(Signals{ViewportWidth: 1280, DevicePixelRatio: 1})
	p.MouseRadius = 0
	p.NaturalMovement = 0
	p.Friction = 1
	return p
}
