package object

import "github.com/tomz197/flappy/internal/physics"

// Obstacle is a pair of barriers sharing one horizontal position.
// The top barrier hangs from Y=0, the bottom one stands on the field floor,
// and the vertical gap between them is fixed at creation.
type Obstacle struct {
	X            float64 // Left edge shared by both barriers
	Width        float64
	TopHeight    float64
	BottomHeight float64
	FieldHeight  float64
	Passed       bool // Whether this obstacle has already been scored
}

// NewObstacle creates an obstacle at x whose bottom height is derived from the gap.
func NewObstacle(x, width, topHeight, gap, fieldHeight float64) *Obstacle {
	return &Obstacle{
		X:            x,
		Width:        width,
		TopHeight:    topHeight,
		BottomHeight: fieldHeight - gap - topHeight,
		FieldHeight:  fieldHeight,
	}
}

// Advance moves the obstacle left by speed.
func (o *Obstacle) Advance(speed float64) {
	o.X -= speed
}

// TrailingEdge returns the x-coordinate of the obstacle's right side.
func (o *Obstacle) TrailingEdge() float64 {
	return o.X + o.Width
}

// TopRect returns the top barrier.
func (o *Obstacle) TopRect() physics.Rect {
	return physics.Rect{X: o.X, Y: 0, W: o.Width, H: o.TopHeight}
}

// BottomRect returns the bottom barrier.
func (o *Obstacle) BottomRect() physics.Rect {
	return physics.Rect{X: o.X, Y: o.FieldHeight - o.BottomHeight, W: o.Width, H: o.BottomHeight}
}

// Hits reports whether box overlaps either barrier.
func (o *Obstacle) Hits(box physics.Rect) bool {
	return box.Overlaps(o.TopRect()) || box.Overlaps(o.BottomRect())
}

// Draw renders both barriers as filled rectangles.
func (o *Obstacle) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(o.TopRect())
	ctx.Canvas.FillRect(o.BottomRect())
	return nil
}
