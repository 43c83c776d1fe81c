package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-field/internal/particles"
)

func alphaAt(t *testing.T, s *Surface, x, y int) uint32 {
	t.Helper()
	_, _, _, a := s.Image().At(x, y).RGBA()
	return a
}

func TestSurfaceDrawsCircle(t *testing.T) {
	s, err := NewSurface(64, 64, nil)
	require.NoError(t, err)
	defer s.Release()

	w, h := s.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)

	s.Clear()
	assert.Zero(t, alphaAt(t, s, 32, 32))

	s.FillCircle(32, 32, 8, color.NRGBA{R: 250, G: 189, A: 255})
	assert.NotZero(t, alphaAt(t, s, 32, 32))
	assert.Zero(t, alphaAt(t, s, 2, 2))

	s.Clear()
	assert.Zero(t, alphaAt(t, s, 32, 32))
}

func TestSurfaceBackground(t *testing.T) {
	s, err := NewSurface(8, 8, nil)
	require.NoError(t, err)
	defer s.Release()

	s.SetBackground(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	s.Clear()
	assert.Equal(t, uint32(0xffff), alphaAt(t, s, 4, 4))

	s.SetBackground(nil)
	s.Clear()
	assert.Zero(t, alphaAt(t, s, 4, 4))
}

func TestNewSurfaceRejectsEmpty(t *testing.T) {
	_, err := NewSurface(0, 10, nil)
	assert.Error(t, err)

	s, err := Factory{}.NewSurface(10, -1)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestFieldOnRasterSurface(t *testing.T) {
	prof := particles.DeriveProfile(particles.Signals{ViewportWidth: 1280, DevicePixelRatio: 1})
	prof.ParticleCount = 2
	f := particles.Mount(host{w: 40, h: 40}, prof)
	defer f.Unmount()

	require.Equal(t, particles.Running, f.State())
	s, ok := f.Surface().(*Surface)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestSnapshot(t *testing.T) {
	prof := particles.DeriveProfile(particles.Signals{ViewportWidth: 1280, DevicePixelRatio: 1})
	ps := []particles.Particle{
		{X: 10, Y: 10, Radius: 2},
		{X: 30, Y: 10, Radius: 2},
	}
	path := filepath.Join(t.TempDir(), "shot.png")

	require.NoError(t, Snapshot(path, 40, 20, ps, prof, particles.DefaultTint, color.Black))

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	img, err := png.Decode(fh)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	_, _, _, a := img.At(0, 19).RGBA()
	assert.Equal(t, uint32(0xffff), a, "background is opaque")

	assert.Error(t, Snapshot(path, 0, 0, ps, prof, particles.DefaultTint, nil))
}

type host struct{ w, h int }

func (h host) ContainerSize() (int, int) { return h.w, h.h }

func (h host) NewSurface(w, ht int) (particles.Surface, error) {
	return Factory{}.NewSurface(w, ht)
}
