// Package game hosts a particle field in an ebiten window.
package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particles"
)

type Game struct {
	settings config.Settings
	log      *zap.Logger

	// scaleFactor reports the monitor's device scale factor.
	scaleFactor func() float64

	prof     particles.Profile
	profiled bool
	field    *particles.Field

	// window client area in CSS pixels, as last seen by Layout
	outsideW, outsideH int
	// size the field was last told about
	measuredW, measuredH int

	cursorX, cursorY int
	cursorSeen       bool

	showHUD bool
	started time.Time
	lastErr error
}

func New(settings config.Settings, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		settings:    settings,
		log:         log,
		scaleFactor: func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
	}
}

// ContainerSize implements particles.Host.
func (g *Game) ContainerSize() (int, int) {
	return g.outsideW, g.outsideH
}

// NewSurface implements particles.Host.
func (g *Game) NewSurface(width, height int) (particles.Surface, error) {
	s, err := newSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Field returns the mounted field, nil before the first Update.
func (g *Game) Field() *particles.Field { return g.field }

func (g *Game) Update() error {
	if g.field == nil {
		g.mount()
	}

	g.field.SetVisible(!ebiten.IsWindowMinimized())

	if g.outsideW != g.measuredW || g.outsideH != g.measuredH {
		g.measuredW, g.measuredH = g.outsideW, g.outsideH
		g.field.Resize()
	}

	if x, y := ebiten.CursorPosition(); !g.cursorSeen || x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY, g.cursorSeen = x, y, true
		g.field.PointerMoved(cssPixels(x, g.prof.DPR), cssPixels(y, g.prof.DPR))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.field.Unmount()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := g.saveSnapshot(); err != nil {
			g.lastErr = err
			g.log.Error("snapshot failed", zap.Error(err))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.showHUD = !g.showHUD
	}

	g.field.Frame(time.Now())
	return nil
}

func (g *Game) mount() {
	g.measuredW, g.measuredH = g.outsideW, g.outsideH
	g.field = particles.Mount(g, g.prof,
		particles.WithLogger(g.log.Named("field")),
		particles.WithTint(g.settings.Tint),
	)
	g.started = time.Now()
	g.log.Info("particle field mounted",
		zap.Stringer("state", g.field.State()),
		zap.Int("particles", g.prof.ParticleCount),
		zap.Float64("dpr", g.prof.DPR),
		zap.Bool("narrow", g.prof.Narrow),
	)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.settings.Background)

	if g.field != nil {
		if s, ok := g.field.Surface().(*surface); ok {
			op := &ebiten.DrawImageOptions{}
			op.ColorScale.ScaleAlpha(float32(g.settings.Opacity))
			screen.DrawImage(s.img, op)
		}
	}

	if g.showHUD {
		ebitenutil.DebugPrintAt(screen, g.status(time.Now()), 12, 12)
	}
}

// Layout derives the capability profile on its first call and renders at
// device resolution so particle coordinates map 1:1 to screen pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.profiled {
		g.prof = g.settings.Profile(outsideWidth, g.scaleFactor())
		g.profiled = true
	}
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	return devicePixels(outsideWidth, g.prof.DPR), devicePixels(outsideHeight, g.prof.DPR)
}

func (g *Game) status(now time.Time) string {
	if g.field == nil {
		return "starting"
	}
	f := g.field
	w, h := 0, 0
	if s := f.Surface(); s != nil {
		w, h = s.Size()
	}
	status := fmt.Sprintf("%s | %d particles | %d steps | %dx%d @%.1fx | %s",
		f.State(), len(f.Particles()), f.Steps(), w, h, g.prof.DPR, formatDuration(now.Sub(g.started)))
	if g.lastErr != nil {
		status += "\nError: " + g.lastErr.Error()
	}
	return status
}
