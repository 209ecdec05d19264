// Package loop wires the simulation together and drives it tick by tick.
package loop

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/loop/config"
	"github.com/tomz197/asteroids-wire/internal/object"
)

// Renderer presents one frame per tick. The frame is only valid during the call.
type Renderer interface {
	Render(frame object.Frame) error
}

// KeySource supplies the held keys once per tick.
// It returns io.EOF when the player's input is gone.
type KeySource interface {
	Keys() (input.Keys, error)
}

// SessionOptions configures a Session.
type SessionOptions struct {
	ID       string
	Network  Options
	Clock    Clock
	Keys     KeySource
	Renderer Renderer
	Logger   *log.Logger

	// Waves, when set, reseeds the arena whenever the last asteroid is gone.
	Waves    WaveSource
	WaveSize int

	// MaxTicks stops the session after that many ticks. Zero means no limit.
	MaxTicks int
}

// WaveSource produces fresh asteroids for a cleared arena.
type WaveSource interface {
	Wave(count int) []object.Asteroid
}

// Stats summarizes a session.
type Stats struct {
	Ticks              int
	SimTime            float64
	BulletsFired       int
	AsteroidsDestroyed int
	Waves              int
}

// Session runs one player's simulation from its own clock, input and
// renderer. Sessions share nothing.
type Session struct {
	opts   SessionOptions
	net    *Network
	logger *log.Logger
	stats  Stats
}

// NewSession creates a session. Missing clock and logger default to a wall
// clock at the configured tick rate and the default logger.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.ID != "" {
		logger = logger.With("session", opts.ID)
	}
	return &Session{
		opts:   opts,
		net:    NewNetwork(opts.Network),
		logger: logger,
	}
}

// Stats returns the counters collected so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// Tick validates dt and advances the simulation once.
func (s *Session) Tick(dt float64, keys input.Keys) (Tick, error) {
	if err := ValidateDelta(dt); err != nil {
		return Tick{}, err
	}

	tick := s.net.Step(dt, keys)

	s.stats.Ticks++
	s.stats.SimTime += dt
	if tick.Fired {
		s.stats.BulletsFired++
	}
	if n := len(tick.Resolution.RemovedAsteroids); n > 0 {
		s.stats.AsteroidsDestroyed += n
		s.logger.Debug("asteroids destroyed", "count", n, "tick", s.stats.Ticks)
	}

	// Children of this tick's hits arrive next tick, so the arena is only
	// clear when nothing is left and nothing is pending.
	if s.opts.Waves != nil && s.opts.WaveSize > 0 && len(tick.Frame.Asteroids) == 0 && len(tick.Resolution.RemovedAsteroids) == 0 {
		s.net.Seed(s.opts.Waves.Wave(s.opts.WaveSize)...)
		s.stats.Waves++
		s.logger.Debug("new wave", "size", s.opts.WaveSize)
	}

	return tick, nil
}

// Run drives the session until the player quits, input ends, the context is
// cancelled or MaxTicks is reached. Ending for any of those reasons is not an
// error.
func (s *Session) Run(ctx context.Context) error {
	if s.opts.Keys == nil || s.opts.Renderer == nil {
		return errors.New("session needs a key source and a renderer")
	}
	clock := s.opts.Clock
	if clock == nil {
		clock = NewWallClock(config.TickTime)
	}

	s.logger.Info("session started")
	defer func() {
		s.logger.Info("session ended",
			"ticks", s.stats.Ticks,
			"seconds", s.stats.SimTime,
			"fired", s.stats.BulletsFired,
			"destroyed", s.stats.AsteroidsDestroyed,
		)
	}()

	for s.opts.MaxTicks == 0 || s.stats.Ticks < s.opts.MaxTicks {
		dt, err := clock.Tick(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "clock")
		}

		keys, err := s.opts.Keys.Keys()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read keys")
		}
		if keys.Held(input.KeyQuit) {
			return nil
		}

		tick, err := s.Tick(dt, keys)
		if err != nil {
			return err
		}
		if err := s.opts.Renderer.Render(tick.Frame); err != nil {
			return errors.Wrap(err, "render")
		}
	}
	return nil
}
