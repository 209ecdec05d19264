package render

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/tomz197/asteroids-wire/internal/draw"
	"github.com/tomz197/asteroids-wire/internal/object"
)

// Terminal draws frames with ANSI escape sequences and half-block characters.
// Each frame is assembled in memory and written in chunks.
type Terminal struct {
	w      io.Writer
	size   draw.TermSizeFunc
	canvas *draw.Canvas
	buf    bytes.Buffer
}

// NewTerminal creates a renderer writing to w. size reports the terminal
// dimensions before every frame so resizes are picked up.
func NewTerminal(w io.Writer, size draw.TermSizeFunc) *Terminal {
	return &Terminal{w: w, size: size, canvas: newCanvas()}
}

// Start hides the cursor and clears the screen.
func (t *Terminal) Start() {
	draw.HideCursor(t.w)
	draw.ClearScreen(t.w)
}

// Stop clears the screen and restores the cursor.
func (t *Terminal) Stop() {
	draw.ClearScreen(t.w)
	draw.ShowCursor(t.w)
}

// Render draws one frame.
func (t *Terminal) Render(f object.Frame) error {
	width, height, err := t.size()
	if err != nil {
		return errors.Wrap(err, "terminal size")
	}
	paint(t.canvas, f, width, height)

	t.buf.Reset()
	draw.ClearScreen(&t.buf)
	if err := t.canvas.Render(&t.buf); err != nil {
		return err
	}
	draw.MoveCursor(&t.buf, 1, height)
	t.buf.WriteString(truncate(hud(f), width))

	return draw.WriteChunked(t.w, t.buf.String())
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n, 0)])
}
