// Package draw renders to ANSI terminals using half-block characters.
package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomz197/flappy/internal/physics"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int    // Terminal columns used by the canvas
	termHeight     int    // Terminal rows used by the canvas
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
	numBuf          [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the terminal columns and rows the canvas occupies.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)))
}

// IsSet reports whether the pixel at terminal sub-pixel coordinates is set.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// CountSet returns the number of set pixels.
func (c *Canvas) CountSet() int {
	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	return n
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
// A pixel is filled when its top-left corner lies inside the rectangle.
func (c *Canvas) FillRect(r physics.Rect) {
	if r.Empty() {
		return
	}
	x0 := int(math.Ceil(r.Left() * c.scaleX))
	x1 := int(math.Ceil(r.Right()*c.scaleX)) - 1
	y0 := int(math.Ceil(r.Top() * c.scaleY))
	y1 := int(math.Ceil(r.Bottom()*c.scaleY)) - 1
	for y := max(y0, 0); y <= min(y1, c.subPixelHeight-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.termWidth-1); x++ {
			c.pixels[y*c.termWidth+x] = true
		}
	}
}

// DrawPolygon draws a filled polygon given in logical coordinates.
// The filled flag is kept for outline-only callers; outlines are always drawn.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.drawLine(points[i], points[(i+1)%n])
	}
}

// drawLine draws a line using Bresenham's algorithm in pixel space.
func (c *Canvas) drawLine(p1, p2 Point) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render outputs the whole canvas to the writer, one cursor move per row.
// Empty cells are written as spaces so no screen clear is needed between frames.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termHeight * (c.termWidth*3 + 12))

	for row := 0; row < c.termHeight; row++ {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
		c.renderBuf.WriteByte(';')
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(1+c.offsetCol), 10))
		c.renderBuf.WriteByte('H')

		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			switch {
			case top && bottom:
				c.renderBuf.WriteRune(BlockFull)
			case top:
				c.renderBuf.WriteRune(BlockUpperHalf)
			case bottom:
				c.renderBuf.WriteRune(BlockLowerHalf)
			default:
				c.renderBuf.WriteByte(BlockEmpty)
			}
		}
	}

	return writeChunked(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas when there is room for it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)
	buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
	buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
	for row := top + 1; row < bottom; row++ {
		r := strconv.Itoa(row)
		buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│")
		buf.WriteString("\033[" + r + ";" + strconv.Itoa(right) + "H│")
	}
	return writeChunked(w, buf.String())
}

// TerminalWidth returns the terminal column count used by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count used by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
