package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/flappy/internal/physics"
)

func TestFillRectScales(t *testing.T) {
	// 10 columns x 10 rows -> 10 x 20 sub-pixels over a 100 x 200 field.
	c := NewScaledCanvas(10, 10, 100, 200)
	c.FillRect(physics.Rect{X: 0, Y: 0, W: 50, H: 20})

	assert.Equal(t, 5*2, c.CountSet())
	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(4, 1))
	assert.False(t, c.IsSet(5, 0))
	assert.False(t, c.IsSet(0, 2))
}

func TestFillRectClipsOffscreen(t *testing.T) {
	c := NewScaledCanvas(10, 10, 100, 200)
	c.FillRect(physics.Rect{X: -30, Y: 190, W: 50, H: 50})
	assert.Equal(t, 2, c.CountSet())
}

func TestRenderUsesHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.SetFloat(0, 0)
	c.SetFloat(1, 1)
	c.SetFloat(2, 0)
	c.SetFloat(2, 1)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;1H▀▄█", buf.String())
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(4, 2)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[3;5H  ", buf.String())
}

func TestRenderBorderNeedsRoom(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	var buf bytes.Buffer
	require.NoError(t, c.RenderBorder(&buf))
	assert.Empty(t, buf.String())

	c.SetOffset(1, 1)
	require.NoError(t, c.RenderBorder(&buf))
	assert.Contains(t, buf.String(), "┌──┐")
	assert.Contains(t, buf.String(), "└──┘")
}

func TestChunkWriterFlushesWithOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	assert.Empty(t, out.String(), "nothing is written before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[2;3Hhi", out.String())
}

func TestChunkWriterLargePayload(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	payload := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(payload)
	require.NoError(t, cw.Flush())
	assert.Equal(t, payload, out.String())
}

func TestWriteCentered(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteCentered(10, 3, "abcd")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[3;4Habcd", out.String())
}

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name             string
		termW, termH     int
		wantCols, wantRs int
	}{
		{"height bound", 80, 32, 36, 32},
		{"width bound", 18, 40, 18, 16},
		{"max clamp", 400, 200, 67, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := FitAspect(tt.termW, tt.termH, 120, 60, 360, 640)
			assert.Equal(t, tt.wantCols, cols)
			assert.Equal(t, tt.wantRs, rows)
		})
	}
}
