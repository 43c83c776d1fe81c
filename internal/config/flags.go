package config

import (
	"flag"
	"fmt"
	"io"
)

// Flags holds command-line options shared by the window host.
type Flags struct {
	ConfigPath    string
	ReducedMotion bool
	Particles     int
	Width         int
	Height        int
	Verbose       bool
	ShowExample   bool
}

// ParseFlags parses args (without the program name) into Flags.
func ParseFlags(name string, args []string, output io.Writer) (*Flags, error) {
	fl := &Flags{}
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)

	flags.StringVar(&fl.ConfigPath, "config", "", "INI file with [Window], [Field] and [Output] sections")
	flags.StringVar(&fl.ConfigPath, "c", "", "INI file (shorthand)")
	flags.BoolVar(&fl.ReducedMotion, "reduced-motion", false, "use the minimal particle count")
	flags.IntVar(&fl.Particles, "particles", 0, fmt.Sprintf("override particle count (max %d)", MaxParticles))
	flags.IntVar(&fl.Width, "width", 0, "window width in CSS pixels")
	flags.IntVar(&fl.Height, "height", 0, "window height in CSS pixels")
	flags.BoolVar(&fl.Verbose, "v", false, "debug logging")
	flags.BoolVar(&fl.ShowExample, "example-config", false, "print an example config file and exit")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return fl, nil
}

// Resolve loads the config file named by the flags and applies the flag
// overrides on top of it.
func (fl *Flags) Resolve() (Settings, error) {
	s, err := Load(fl.ConfigPath)
	if err != nil {
		return s, err
	}
	fl.Override(&s)
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Override applies flag values that were set.
func (fl *Flags) Override(s *Settings) {
	if fl.ReducedMotion {
		s.ReducedMotion = true
	}
	if fl.Particles != 0 {
		s.ParticleCount = fl.Particles
	}
	if fl.Width != 0 {
		s.Width = fl.Width
	}
	if fl.Height != 0 {
		s.Height = fl.Height
	}
}
