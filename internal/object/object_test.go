package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/physics"
)

func TestObstacleDerivesBottomFromGap(t *testing.T) {
	o := NewObstacle(360, 50, 50, 160, 640)
	assert.Equal(t, 430.0, o.BottomHeight)
	assert.Equal(t, physics.Rect{X: 360, Y: 0, W: 50, H: 50}, o.TopRect())
	assert.Equal(t, physics.Rect{X: 360, Y: 210, W: 50, H: 430}, o.BottomRect())
	assert.Equal(t, 410.0, o.TrailingEdge())
}

func TestObstacleAdvanceMovesBothBarriers(t *testing.T) {
	o := NewObstacle(360, 50, 100, 160, 640)
	o.Advance(2.5)
	assert.Equal(t, 357.5, o.TopRect().X)
	assert.Equal(t, 357.5, o.BottomRect().X)
}

func TestObstacleHits(t *testing.T) {
	o := NewObstacle(40, 50, 200, 160, 640)

	assert.True(t, o.Hits(physics.Rect{X: 60, Y: 150, W: 20, H: 20}), "inside top barrier")
	assert.True(t, o.Hits(physics.Rect{X: 60, Y: 400, W: 20, H: 20}), "inside bottom barrier")
	assert.False(t, o.Hits(physics.Rect{X: 60, Y: 250, W: 20, H: 20}), "inside the gap")
	assert.False(t, o.Hits(physics.Rect{X: 100, Y: 100, W: 20, H: 20}), "right of the obstacle")
}

func TestPlayerFallAndImpulse(t *testing.T) {
	p := NewPlayer(50, 300, 40)
	p.Impulse(-7)
	p.Fall(0.4)
	assert.InDelta(t, -6.6, p.VY, 1e-9)
	assert.InDelta(t, 293.4, p.Y, 1e-9)
}

func TestPlayerHitBox(t *testing.T) {
	p := NewPlayer(50, 300, 40)
	assert.Equal(t, physics.Rect{X: 60, Y: 310, W: 20, H: 20}, p.HitBox(10))
}

func TestPlayerRotation(t *testing.T) {
	tests := []struct {
		vy   float64
		want float64
	}{
		{0, 0},
		{-7, -21},
		{-20, -25},
		{5, 15},
		{40, 90},
	}
	for _, tt := range tests {
		p := &Player{VY: tt.vy}
		assert.Equal(t, tt.want, p.Rotation(), "vy=%v", tt.vy)
	}
}

func TestPlayerDrawSetsPixels(t *testing.T) {
	canvas := draw.NewScaledCanvas(36, 32, 360, 640)
	p := NewPlayer(50, 300, 40)
	require.NoError(t, p.Draw(DrawContext{Canvas: canvas}))
	assert.Positive(t, canvas.CountSet())
}

func TestDebrisExpiresAfterLifetime(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	debris := SpawnDebris(100, 100, 8, 120, 0.5, rng)
	require.Len(t, debris, 8)

	for _, p := range debris {
		assert.False(t, p.Update(10*time.Millisecond))
		assert.True(t, p.Update(time.Second))
		p.Release()
	}
}

func TestShouldRenderBlink(t *testing.T) {
	assert.True(t, ShouldRenderBlink(0, 2))
	assert.False(t, ShouldRenderBlink(0.6, 2))
	assert.True(t, ShouldRenderBlink(1.1, 2))
}
