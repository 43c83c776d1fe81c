// Command particlefield-render runs the particle field without a window and
// writes every simulated frame as a PNG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/raster"
)

type options struct {
	configPath    string
	width, height int
	dpr           float64
	frames        int
	out           string
	reducedMotion bool
	seed          uint64
	pointer       string
	opaque        bool
	realtime      bool
	verbose       bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	flags := flag.NewFlagSet("particlefield-render", flag.ContinueOnError)
	flags.StringVar(&o.configPath, "config", "", "INI config file")
	flags.IntVar(&o.width, "width", 0, "container width in CSS pixels")
	flags.IntVar(&o.height, "height", 0, "container height in CSS pixels")
	flags.Float64Var(&o.dpr, "dpr", 1, "device pixel ratio")
	flags.IntVar(&o.frames, "frames", 0, "number of frames to write")
	flags.StringVar(&o.out, "out", "", "output directory")
	flags.BoolVar(&o.reducedMotion, "reduced-motion", false, "use the minimal particle count")
	flags.Uint64Var(&o.seed, "seed", 0, "random seed, 0 picks one")
	flags.StringVar(&o.pointer, "pointer", "", "pointer position as x,y in CSS pixels")
	flags.BoolVar(&o.opaque, "opaque", false, "paint the configured background instead of transparency")
	flags.BoolVar(&o.realtime, "realtime", false, "pace frames with a wall-clock ticker")
	flags.BoolVar(&o.verbose, "v", false, "debug logging")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *options) settings() (config.Settings, error) {
	s, err := config.Load(o.configPath)
	if err != nil {
		return s, err
	}
	if o.width != 0 {
		s.Width = o.width
	}
	if o.height != 0 {
		s.Height = o.height
	}
	if o.frames != 0 {
		s.Frames = o.frames
	}
	if o.out != "" {
		s.OutputDir = o.out
	}
	s.ReducedMotion = s.ReducedMotion || o.reducedMotion
	return s, s.Validate()
}

func parsePoint(v string) (particles.Point, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return particles.Point{}, fmt.Errorf("pointer %q: expected x,y", v)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return particles.Point{}, fmt.Errorf("pointer %q: %w", v, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return particles.Point{}, fmt.Errorf("pointer %q: %w", v, err)
	}
	return particles.Point{X: x, Y: y}, nil
}

// host is a fixed-size container backed by raster surfaces.
type host struct {
	width, height int
	background    color.Color // nil keeps surfaces transparent
	log           *zap.Logger
}

func (h *host) ContainerSize() (int, int) { return h.width, h.height }

func (h *host) NewSurface(width, height int) (particles.Surface, error) {
	s, err := raster.NewSurface(width, height, h.log)
	if err != nil {
		return nil, err
	}
	s.SetBackground(h.background)
	return s, nil
}

var errDone = errors.New("all frames written")

func run(ctx context.Context, o *options, log *zap.Logger) error {
	s, err := o.settings()
	if err != nil {
		return err
	}
	if s.Frames == 0 {
		return nil
	}
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	prof := s.Profile(s.Width, o.dpr)
	h := &host{width: s.Width, height: s.Height, log: log.Named("raster")}
	if o.opaque {
		h.background = s.Background
	}

	start := time.Now()
	opts := []particles.Option{
		particles.WithLogger(log.Named("field")),
		particles.WithTint(s.Tint),
	}
	if o.seed != 0 {
		opts = append(opts, particles.WithRand(rand.New(rand.NewPCG(o.seed, o.seed>>1|1))))
	}
	if !o.realtime {
		opts = append(opts, particles.WithClock(func() time.Time { return start }))
	}

	var pointer *particles.Point
	if o.pointer != "" {
		p, err := parsePoint(o.pointer)
		if err != nil {
			return err
		}
		pointer = &p
	}

	f := particles.Mount(h, prof, opts...)
	if f.State() != particles.Running {
		return fmt.Errorf("no drawing surface for %dx%d", s.Width, s.Height)
	}
	if pointer != nil {
		f.PointerMoved(pointer.X, pointer.Y)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var frames <-chan time.Time
	if o.realtime {
		ticker := time.NewTicker(prof.UpdateInterval)
		defer ticker.Stop()
		frames = ticker.C
	} else {
		frames = syntheticFrames(ctx, start, prof.UpdateInterval)
	}

	log.Info("rendering",
		zap.Int("frames", s.Frames),
		zap.Int("particles", prof.ParticleCount),
		zap.String("out", s.OutputDir),
	)

	written := 0
	err = f.Run(ctx, frames, func(f *particles.Field) error {
		rs, ok := f.Surface().(*raster.Surface)
		if !ok {
			return errors.New("unexpected surface type")
		}
		name := filepath.Join(s.OutputDir, fmt.Sprintf(config.FramePattern, written))
		if err := rs.SavePNG(name); err != nil {
			return err
		}
		written++
		if written >= s.Frames {
			return errDone
		}
		return nil
	})
	if errors.Is(err, errDone) {
		log.Info("done", zap.Int("written", written), zap.Duration("took", time.Since(start)))
		return nil
	}
	return err
}

// syntheticFrames emits timestamps one interval apart as fast as they are consumed.
func syntheticFrames(ctx context.Context, start time.Time, interval time.Duration) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		for i := 1; ; i++ {
			select {
			case <-ctx.Done():
				return
			case ch <- start.Add(time.Duration(i) * interval):
			}
		}
	}()
	return ch
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	log, err := logging.New(o.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, o, log)
	stop()
	if err != nil {
		log.Error("render failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
