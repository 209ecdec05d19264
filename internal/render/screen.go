package render

import (
	"io"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/asteroids-wire/internal/draw"
	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/object"
)

// Screen renders frames through tcell and doubles as the key source,
// since tcell owns the terminal's input.
type Screen struct {
	screen  tcell.Screen
	canvas  *draw.Canvas
	tracker *input.Tracker
	style   tcell.Style
	done    chan struct{}
}

// NewScreen wraps an initialized tcell screen. Presses count as held for
// hold after they arrive.
func NewScreen(s tcell.Screen, hold time.Duration) *Screen {
	return &Screen{
		screen:  s,
		canvas:  newCanvas(),
		tracker: input.NewTracker(hold),
		style:   tcell.StyleDefault,
		done:    make(chan struct{}),
	}
}

// Start begins consuming terminal events. It returns immediately; events
// are read until the screen is finalized.
func (s *Screen) Start() {
	s.screen.HideCursor()
	go s.poll()
}

func (s *Screen) poll() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if k, ok := input.TcellKey(ev); ok {
				s.tracker.Press(k, time.Now())
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// Keys returns the currently held keys, or io.EOF once the screen is gone.
func (s *Screen) Keys() (input.Keys, error) {
	select {
	case <-s.done:
		return 0, io.EOF
	default:
	}
	return s.tracker.Snapshot(time.Now()), nil
}

// Render draws one frame.
func (s *Screen) Render(f object.Frame) error {
	width, height := s.screen.Size()
	paint(s.canvas, f, width, height)

	s.screen.Clear()
	for row := 0; row < s.canvas.TerminalHeight(); row++ {
		for col := 0; col < s.canvas.TerminalWidth(); col++ {
			if ch, ok := s.canvas.Cell(col, row); ok {
				s.screen.SetContent(col, row, ch, nil, s.style)
			}
		}
	}

	col := 0
	for _, r := range hud(f) {
		if col >= width {
			break
		}
		s.screen.SetContent(col, height-1, r, nil, s.style.Dim(true))
		col++
	}

	s.screen.Show()
	return nil
}
