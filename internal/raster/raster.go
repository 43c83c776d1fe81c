// Package raster draws particle fields into gogpu/gg contexts so frames can
// be written as PNG files without a window.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/particles"
)

// Surface is a particles.Surface backed by a software gg context.
type Surface struct {
	dc  *gg.Context
	log *zap.Logger

	background *gg.RGBA
}

// NewSurface allocates a width x height context.
func NewSurface(width, height int, log *zap.Logger) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster surface %dx%d has no area", width, height)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Surface{dc: gg.NewContext(width, height), log: log}, nil
}

func (s *Surface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

// SetBackground makes Clear paint c instead of transparency. nil restores transparency.
func (s *Surface) SetBackground(c color.Color) {
	if c == nil {
		s.background = nil
		return
	}
	bg := gg.FromColor(c)
	s.background = &bg
}

func (s *Surface) Clear() {
	if s.background != nil {
		s.dc.ClearWithColor(*s.background)
		return
	}
	s.dc.Clear()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	if err := s.dc.Stroke(); err != nil {
		s.log.Debug("stroke failed", zap.Error(err))
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(cx, cy, r)
	if err := s.dc.Fill(); err != nil {
		s.log.Debug("fill failed", zap.Error(err))
	}
}

func (s *Surface) Release() {
	if err := s.dc.Close(); err != nil {
		s.log.Debug("closing raster context", zap.Error(err))
	}
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// SavePNG writes the current pixels to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the current pixels to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Factory hands out raster surfaces to a particles.Field.
type Factory struct {
	Log *zap.Logger
}

func (f Factory) NewSurface(width, height int) (particles.Surface, error) {
	s, err := NewSurface(width, height, f.Log)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot renders ps onto a fresh surface over background and writes it to path.
func Snapshot(path string, width, height int, ps []particles.Particle, prof particles.Profile, tint color.NRGBA, background color.Color) error {
	s, err := NewSurface(width, height, nil)
	if err != nil {
		return err
	}
	defer s.Release()

	s.SetBackground(background)
	particles.Draw(s, ps, prof, tint)
	return s.SavePNG(path)
}
