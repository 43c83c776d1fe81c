package particles

import (
	"image/color"
	"math"
)

// LineWidth is the stroke width of connection links.
const LineWidth = 0.5

// DefaultTint is the amber used for particles and links.
var DefaultTint = color.NRGBA{R: 250, G: 189, B: 0, A: 255}

// Surface is a 2D drawing target sized in device pixels.
type Surface interface {
	Size() (width, height int)
	Clear()
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	Release()
}

// SurfaceFactory allocates surfaces. An error means no drawing context is available.
type SurfaceFactory interface {
	NewSurface(width, height int) (Surface, error)
}

// Link is a proximity connection between particles I and J.
type Link struct {
	I, J  int
	Alpha float64
}

// Links returns every pair closer than maxDist, brighter the closer they are.
func Links(ps []Particle, maxDist, alpha float64) []Link {
	if maxDist <= 0 {
		return nil
	}
	var links []Link
	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < maxDist {
				links = append(links, Link{I: i, J: j, Alpha: (1 - d/maxDist) * alpha})
			}
		}
	}
	return links
}

// Draw clears s and paints links, then particles, on top.
func Draw(s Surface, ps []Particle, prof Profile, tint color.NRGBA) {
	s.Clear()

	for _, l := range Links(ps, prof.ConnectionDistance, prof.ConnectionAlpha) {
		a, b := ps[l.I], ps[l.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, LineWidth, withAlpha(tint, l.Alpha))
	}

	fill := withAlpha(tint, prof.ParticleAlpha)
	for _, p := range ps {
		s.FillCircle(p.X, p.Y, p.Radius, fill)
	}
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(a) * 255))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
