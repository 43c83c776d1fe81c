package game

import (
	"fmt"
	"math"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// devicePixels converts a CSS length to device pixels, never below 1.
func devicePixels(css int, dpr float64) int {
	return max(1, int(math.Round(float64(css)*dpr)))
}

// cssPixels converts a device-pixel coordinate back to CSS pixels.
func cssPixels(px int, dpr float64) float64 {
	if dpr <= 0 {
		return float64(px)
	}
	return float64(px) / dpr
}
