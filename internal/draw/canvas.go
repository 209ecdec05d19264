package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// circleSegments is the number of chords used to approximate a circle.
const circleSegments = 24

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
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
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
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

// IsSet reports whether the pixel at the given pixel coordinates is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

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

// DrawPolygon draws the outline of a closed polygon.
func (c *Canvas) DrawPolygon(points []Point) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawCircle draws the outline of a circle in logical coordinates.
func (c *Canvas) DrawCircle(center Point, radius float64) {
	if radius <= 0 {
		c.SetFloat(center.X, center.Y)
		return
	}
	var pts [circleSegments]Point
	for i := range pts {
		a := float64(i) * 2 * math.Pi / circleSegments
		pts[i] = Point{X: center.X + math.Cos(a)*radius, Y: center.Y + math.Sin(a)*radius}
	}
	c.DrawPolygon(pts[:])
}

// Cell returns the half-block character for a terminal cell, or false if
// both of its pixels are empty.
func (c *Canvas) Cell(col, row int) (rune, bool) {
	top := c.IsSet(col, row*2)
	bottom := c.IsSet(col, row*2+1)
	switch {
	case top && bottom:
		return BlockFull, true
	case top:
		return BlockUpperHalf, true
	case bottom:
		return BlockLowerHalf, true
	}
	return 0, false
}

// Render outputs the canvas to the writer using half-block characters.
// Empty cells are skipped; callers clear the screen beforehand.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			if ch, ok := c.Cell(col, row); ok {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1, col+1, ch)
			}
		}
	}

	return WriteChunked(w, c.renderBuf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
