package config

import "image/color"

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Particle Field - S: save snapshot, F1: stats, Esc/Q: quit"

	// Container opacity applied when the field is composited over the page.
	FieldOpacity = 0.6

	// Headless renderer defaults
	FrameCount   = 120
	OutputDir    = "frames"
	FramePattern = "frame_%04d.png"
)

var (
	Background = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	Tint       = color.NRGBA{R: 250, G: 189, B: 0, A: 255}
)
