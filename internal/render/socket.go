package render

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/tomz197/asteroids-wire/internal/object"
)

// Socket streams frames as JSON messages over a websocket.
type Socket struct {
	ctx     context.Context
	conn    *websocket.Conn
	timeout time.Duration
}

// NewSocket creates a renderer writing to conn. Writes give up after timeout
// or when ctx is done.
func NewSocket(ctx context.Context, conn *websocket.Conn, timeout time.Duration) *Socket {
	return &Socket{ctx: ctx, conn: conn, timeout: timeout}
}

// Render sends one frame.
func (s *Socket) Render(f object.Frame) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	return wsjson.Write(ctx, s.conn, f)
}
