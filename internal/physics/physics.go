// Package physics provides collision detection and integration helpers.
package physics

// Rect is an axis-aligned rectangle in playfield coordinates.
// X and Y are the top-left corner; the y axis grows downward.
type Rect struct {
	X, Y float64
	W, H float64
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Inset shrinks the rectangle by margin on every side.
// A margin larger than half a dimension collapses that dimension to zero at the center.
func (r Rect) Inset(margin float64) Rect {
	out := Rect{X: r.X + margin, Y: r.Y + margin, W: r.W - 2*margin, H: r.H - 2*margin}
	if out.W < 0 {
		out.X = r.X + r.W/2
		out.W = 0
	}
	if out.H < 0 {
		out.Y = r.Y + r.H/2
		out.H = 0
	}
	return out
}

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Integrate applies one explicit Euler step: velocity first, then position.
func Integrate(pos, vel, accel float64) (newPos, newVel float64) {
	newVel = vel + accel
	return pos + newVel, newVel
}
