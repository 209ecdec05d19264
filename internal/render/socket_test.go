package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-wire/internal/object"
	"github.com/tomz197/asteroids-wire/internal/physics"
)

func TestSocketStreamsFrames(t *testing.T) {
	frames := []object.Frame{
		sampleFrame(),
		{
			Ship:      object.Ship{Position: physics.Vec2{1, 2}, Rotation: physics.Rotation(0.5)},
			Asteroids: []object.Asteroid{{Position: physics.Vec2{3, 4}, Generation: 2, Size: 20, Velocity: physics.Vec2{-10, 10}}},
			Bullets:   []object.Bullet{},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()

		sock := NewSocket(r.Context(), conn, time.Second)
		for _, f := range frames {
			if err := sock.Render(f); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	for i, want := range frames {
		var got object.Frame
		require.NoError(t, wsjson.Read(ctx, conn, &got), "frame %d", i)
		assert.Equal(t, want.Ship, got.Ship)
		assert.Equal(t, want.Asteroids, got.Asteroids)
		assert.Len(t, got.Bullets, len(want.Bullets))
	}

	_, _, err = conn.Read(ctx)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
}
