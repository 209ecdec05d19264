package main

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/asteroids-wire/internal/config"
	"github.com/tomz197/asteroids-wire/internal/loop"
	loopconfig "github.com/tomz197/asteroids-wire/internal/loop/config"
	"github.com/tomz197/asteroids-wire/internal/object"
	"github.com/tomz197/asteroids-wire/internal/render"
)

// spectator streams an attract-mode session to every websocket client.
type spectator struct {
	settings config.Settings
	logger   *log.Logger
}

func newSpectator(settings config.Settings, logger *log.Logger) *spectator {
	return &spectator{settings: settings, logger: logger}
}

func (s *spectator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.CloseNow()

	id := uuid.NewString()
	s.logger.Info("New spectator", "session", id, "remote", r.RemoteAddr)

	eg, ctx := errgroup.WithContext(r.Context())

	// Spectators never send anything; reading only notices when they leave.
	eg.Go(func() error {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return err
			}
		}
	})

	eg.Go(func() error {
		game := s.session(ctx, id, conn)
		if err := game.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return conn.Close(websocket.StatusNormalClosure, "session over")
	})

	err = eg.Wait()
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		err = nil
	}
	if err != nil && r.Context().Err() == nil {
		s.logger.Debug("spectator stream ended", "session", id, "err", err)
	}
	s.logger.Info("Spectator left", "session", id)
}

func (s *spectator) session(ctx context.Context, id string, conn *websocket.Conn) *loop.Session {
	network := loop.DefaultOptions().Culled()
	network.BulletLifetime = loopconfig.AttractBulletLife
	tick := s.settings.TickTime()

	return loop.NewSession(loop.SessionOptions{
		ID:       id,
		Network:  network,
		Clock:    loop.NewClock(tick, s.settings.FixedStep),
		Keys:     loop.NewAutopilot(tick.Seconds()),
		Renderer: render.NewSocket(ctx, conn, loopconfig.SpectatorWriteTimeout),
		Logger:   s.logger,
		Waves:    object.NewWaveSpawner(network.Arena, loopconfig.SeedSize, uint64(time.Now().UnixNano())),
		WaveSize: loopconfig.AttractWaveSize,
		MaxTicks: int(loopconfig.SpectatorMaxDuration.Seconds() * s.settings.TickRate),
	})
}
