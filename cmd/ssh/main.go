package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/asteroids-wire/internal/config"
	"github.com/tomz197/asteroids-wire/internal/draw"
	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/loop"
	loopconfig "github.com/tomz197/asteroids-wire/internal/loop/config"
	"github.com/tomz197/asteroids-wire/internal/render"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := settings.Logger(os.Stderr, "ssh")
	logger.Info("SSH config", "host", settings.SSHHost, "port", settings.SSHPort, "hostKeyPath", settings.HostKeyPath)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(settings, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting SSH server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs an independent game session for every connection.
func gameMiddleware(settings config.Settings, logger *log.Logger) wish.Middleware {
	network := loop.DefaultOptions()
	if settings.CullOffscreen {
		network = network.Culled()
	}

	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			id := uuid.NewString()
			logger.Info("New game session", "session", id, "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			out := render.NewTerminal(sess, sizeTracker.getSize)
			out.Start()

			keys := input.NewTerminalSource(sess, loopconfig.KeyHoldDuration)

			game := loop.NewSession(loop.SessionOptions{
				ID:       id,
				Network:  network,
				Clock:    loop.NewClock(settings.TickTime(), settings.FixedStep),
				Keys:     keys,
				Renderer: out,
				Logger:   logger.With("user", sess.User()),
			})
			if err := game.Run(sess.Context()); err != nil {
				logger.Error("Game error", "session", id, "user", sess.User(), "err", err)
			}
			out.Stop()
			_ = keys.Close()

			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
