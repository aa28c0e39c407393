// Package object defines the game entities and how they draw themselves.
package object

import (
	"io"

	"github.com/tomz197/flappy/internal/draw"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical), in field coordinates
	Writer io.Writer    // Direct terminal output (for text overlays)
}

// Object is anything the terminal renderer can draw.
type Object interface {
	Draw(ctx DrawContext) error
}

// ShouldRenderBlink reports whether a blinking element is visible at the given
// elapsed time for a blink frequency in Hz.
func ShouldRenderBlink(elapsed, frequency float64) bool {
	phase := int(elapsed * frequency)
	return phase%2 == 0
}
