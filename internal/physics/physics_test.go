package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"contained", Rect{X: 15, Y: 15, W: 5, H: 5}, true},
		{"partial", Rect{X: 25, Y: 25, W: 20, H: 20}, true},
		{"left touching edge", Rect{X: 0, Y: 10, W: 10, H: 20}, false},
		{"below touching edge", Rect{X: 10, Y: 30, W: 20, H: 5}, false},
		{"far right", Rect{X: 100, Y: 10, W: 5, H: 5}, false},
		{"above", Rect{X: 10, Y: -20, W: 20, H: 10}, false},
		{"zero width", Rect{X: 15, Y: 15, W: 0, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 50, Y: 300, W: 40, H: 40}.Inset(10)
	assert.Equal(t, Rect{X: 60, Y: 310, W: 20, H: 20}, r)

	collapsed := Rect{X: 0, Y: 0, W: 10, H: 40}.Inset(8)
	assert.Equal(t, 5.0, collapsed.X)
	assert.Zero(t, collapsed.W)
	assert.Equal(t, 24.0, collapsed.H)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 120, Y: 360, W: 120, H: 40}
	assert.True(t, r.Contains(120, 360))
	assert.True(t, r.Contains(200, 399))
	assert.False(t, r.Contains(240, 380), "right edge is exclusive")
	assert.False(t, r.Contains(100, 380))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 600))
	assert.Equal(t, 600.0, Clamp(612.5, 0, 600))
	assert.Equal(t, 42.0, Clamp(42, 0, 600))
}

func TestIntegrateAppliesVelocityFirst(t *testing.T) {
	pos, vel := Integrate(300, -7, 0.4)
	assert.InDelta(t, -6.6, vel, 1e-9)
	assert.InDelta(t, 293.4, pos, 1e-9)
}
