// Package draw renders points, lines and circles to a terminal using
// half-block characters.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// maxChunkSize is the maximum bytes to write at once.
// Roughly one MTU keeps SSH output smooth.
const maxChunkSize = 1400

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// WriteChunked writes data in pieces of at most maxChunkSize bytes.
func WriteChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
