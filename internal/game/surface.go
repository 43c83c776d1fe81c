package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/particles"
)

// surface is an offscreen ebiten image the field draws into; Draw blits it
// onto the screen.
type surface struct {
	img *ebiten.Image
}

func newSurface(width, height int) (s *surface, err error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image %dx%d has no area", width, height)
	}
	// NewImage panics when the size exceeds what the graphics driver allows.
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("allocating %dx%d image: %v", width, height, r)
		}
	}()
	return &surface{img: ebiten.NewImage(width, height)}, nil
}

func (s *surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *surface) Clear() { s.img.Clear() }

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (s *surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s *surface) Release() { s.img.Deallocate() }

var _ particles.Surface = (*surface)(nil)
