package game

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/raster"
)

var errNothingToSave = errors.New("no particle field to save yet")

// saveSnapshot asks for a destination and writes the current frame as PNG.
// Cancelling the dialog is not an error.
func (g *Game) saveSnapshot() error {
	if g.field == nil || g.field.Surface() == nil {
		return errNothingToSave
	}

	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("particle-field.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.writeSnapshot(withPNGExt(filename))
}

func (g *Game) writeSnapshot(path string) error {
	s := g.field.Surface()
	if s == nil {
		return errNothingToSave
	}
	w, h := s.Size()
	if err := raster.Snapshot(path, w, h, g.field.Particles(), g.field.Profile(), g.field.Tint(), g.settings.Background); err != nil {
		return err
	}
	g.log.Info("snapshot saved", zap.String("path", path))
	return nil
}

func withPNGExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path
	}
	return path + ".png"
}
