package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/iburimskiy/particle-field/internal/particles"
)

const ExampleFile = `[Window]

# Initial window size in CSS pixels. The drawing surface is this size times
# the clamped device pixel ratio.
Width  = 1024
Height = 640
# Title = Particle Field
# Background = "#0c0c10"

[Field]

# Colour of particles and links.
Tint = "#fabd00"
# Opacity the field is composited with, 0 < Opacity <= 1.
Opacity = 0.6
# Forces the minimal particle count regardless of the window size.
ReducedMotion = false
# Overrides the derived particle count when set. Values above 150 are capped.
# ParticleCount = 80

[Output]

# Used by particlefield-render only.
Dir    = frames
Frames = 120`

// MaxParticles caps configured particle counts to keep the O(n²) link pass bounded.
const MaxParticles = 150

// File mirrors the INI layout read by gcfg.
type File struct {
	Window struct {
		Width      int
		Height     int
		Title      string
		Background string
	}
	Field struct {
		Tint          string
		Opacity       float64
		ReducedMotion bool
		ParticleCount int
	}
	Output struct {
		Dir    string
		Frames int
	}
}

// Settings are the resolved values hosts run with.
type Settings struct {
	Width, Height int
	Title         string
	Background    color.RGBA
	Tint          color.NRGBA
	Opacity       float64
	ReducedMotion bool
	ParticleCount int // zero keeps the derived count

	OutputDir string
	Frames    int
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Width:      WindowWidth,
		Height:     WindowHeight,
		Title:      WindowTitle,
		Background: Background,
		Tint:       Tint,
		Opacity:    FieldOpacity,
		OutputDir:  OutputDir,
		Frames:     FrameCount,
	}
}

// Load reads fname over the defaults. An empty fname returns the defaults.
func Load(fname string) (Settings, error) {
	s := Defaults()
	if fname == "" {
		return s, nil
	}

	f := File{}
	if err := gcfg.ReadFileInto(&f, fname); err != nil {
		return s, fmt.Errorf("reading config %s: %w", fname, err)
	}
	if err := s.merge(&f); err != nil {
		return s, fmt.Errorf("config %s: %w", fname, err)
	}
	return s, nil
}

func (s *Settings) merge(f *File) error {
	if f.Window.Width != 0 {
		s.Width = f.Window.Width
	}
	if f.Window.Height != 0 {
		s.Height = f.Window.Height
	}
	if f.Window.Title != "" {
		s.Title = f.Window.Title
	}
	if f.Window.Background != "" {
		c, err := ParseHexColor(f.Window.Background)
		if err != nil {
			return fmt.Errorf("Window.Background: %w", err)
		}
		s.Background = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}

	if f.Field.Tint != "" {
		c, err := ParseHexColor(f.Field.Tint)
		if err != nil {
			return fmt.Errorf("Field.Tint: %w", err)
		}
		s.Tint = c
	}
	if f.Field.Opacity != 0 {
		s.Opacity = f.Field.Opacity
	}
	s.ReducedMotion = s.ReducedMotion || f.Field.ReducedMotion
	if f.Field.ParticleCount != 0 {
		s.ParticleCount = f.Field.ParticleCount
	}

	if f.Output.Dir != "" {
		s.OutputDir = f.Output.Dir
	}
	if f.Output.Frames != 0 {
		s.Frames = f.Output.Frames
	}
	return s.Validate()
}

// Validate checks ranges that gcfg cannot.
func (s *Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", s.Width, s.Height)
	case s.Opacity <= 0 || s.Opacity > 1:
		return fmt.Errorf("opacity %v outside (0,1]", s.Opacity)
	case s.ParticleCount < 0:
		return fmt.Errorf("particle count %d must not be negative", s.ParticleCount)
	case s.Frames < 0:
		return fmt.Errorf("frame count %d must not be negative", s.Frames)
	}
	return nil
}

// Profile derives the capability profile for the given viewport and applies
// configured overrides.
func (s *Settings) Profile(viewportWidth int, dpr float64) particles.Profile {
	p := particles.DeriveProfile(particles.Signals{
		ReducedMotion:    s.ReducedMotion,
		ViewportWidth:    viewportWidth,
		DevicePixelRatio: dpr,
	})
	if s.ParticleCount > 0 && !s.ReducedMotion {
		p.ParticleCount = min(s.ParticleCount, MaxParticles)
	}
	return p
}

var errBadColor = errors.New("expected #rrggbb")

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w, got %q", errBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w, got %q", errBadColor, s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
