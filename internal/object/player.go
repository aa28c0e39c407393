package object

import (
	"math"

	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/physics"
)

// Tilt limits, in degrees. Rising tilts the nose up, falling tilts it down.
const (
	minTilt    = -25.0
	maxTilt    = 90.0
	tiltFactor = 3.0
)

// Player is the falling sprite. Y is the top edge of its square box.
type Player struct {
	X, Y float64 // Top-left corner of the collision box
	VY   float64 // Vertical velocity in px/tick (positive is down)
	Size float64 // Edge length of the collision box
}

// NewPlayer creates a player at rest.
func NewPlayer(x, y, size float64) *Player {
	return &Player{X: x, Y: y, Size: size}
}

// Fall applies one tick of gravity: velocity first, then position.
func (p *Player) Fall(gravity float64) {
	p.Y, p.VY = physics.Integrate(p.Y, p.VY, gravity)
}

// Impulse replaces the current velocity with v.
func (p *Player) Impulse(v float64) {
	p.VY = v
}

// Bounds returns the full collision box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// HitBox returns the collision box shrunk by margin on every side.
func (p *Player) HitBox(margin float64) physics.Rect {
	return p.Bounds().Inset(margin)
}

// Rotation returns the sprite tilt in degrees for the current velocity.
func (p *Player) Rotation() float64 {
	return physics.Clamp(p.VY*tiltFactor, minTilt, maxTilt)
}

// Draw renders the player as a filled square tilted by its rotation.
func (p *Player) Draw(ctx DrawContext) error {
	half := p.Size / 2
	cx := p.X + half
	cy := p.Y + half
	angle := p.Rotation() * math.Pi / 180
	sin, cos := math.Sincos(angle)

	corners := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
	points := ctx.Canvas.BorrowPoints(len(corners))
	for i, c := range corners {
		points[i] = draw.Point{
			X: cx + c[0]*cos - c[1]*sin,
			Y: cy + c[0]*sin + c[1]*cos,
		}
	}
	ctx.Canvas.DrawPolygon(points, true)
	return nil
}
