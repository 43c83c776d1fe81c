// Package logging builds the zap logger shared by the hosts and routes the
// rasterizer's slog output into it.
package logging

import (
	"log/slog"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at info level, or debug when verbose.
// The logger also becomes gg's logger.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	gg.SetLogger(Slog(log))
	return log, nil
}

// Slog adapts a zap logger for libraries that take *slog.Logger.
func Slog(log *zap.Logger) *slog.Logger {
	return slog.New(zapslog.NewHandler(log.Core()))
}
