package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/term"

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

	app := cli.NewApp()
	app.Name = "asteroids"
	app.Usage = "Play asteroids in the terminal"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "renderer", Value: "ansi", Usage: "Output backend: ansi or tcell"},
		cli.Float64Flag{Name: "tps", Value: settings.TickRate, Usage: "Simulation ticks per second"},
		cli.BoolFlag{Name: "fixed-step", Usage: "Advance by exactly 1/tps each tick"},
		cli.BoolFlag{Name: "no-cull", Usage: "Keep entities that leave the arena"},
		cli.StringFlag{Name: "log-file", Value: "", Usage: "Write logs to this file"},
		cli.StringFlag{Name: "log-level", Value: settings.LogLevel, Usage: "debug, info, warn or error"},
	}
	app.Action = func(c *cli.Context) error {
		settings.TickRate = c.Float64("tps")
		settings.FixedStep = settings.FixedStep || c.Bool("fixed-step")
		settings.CullOffscreen = settings.CullOffscreen && !c.Bool("no-cull")
		settings.LogLevel = c.String("log-level")
		return run(settings, c.String("renderer"), c.String("log-file"))
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, renderer, logFile string) error {
	if settings.TickRate <= 0 {
		return errors.Errorf("tps must be positive, got %v", settings.TickRate)
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		logOut = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.SessionOptions{
		ID:      uuid.NewString(),
		Network: networkOptions(settings),
		Clock:   loop.NewClock(settings.TickTime(), settings.FixedStep),
		Logger:  settings.Logger(logOut, "game"),
	}

	switch renderer {
	case "ansi":
		return runANSI(ctx, opts)
	case "tcell":
		return runTcell(ctx, opts)
	}
	return errors.Errorf("unknown renderer %q", renderer)
}

func networkOptions(settings config.Settings) loop.Options {
	opts := loop.DefaultOptions()
	if settings.CullOffscreen {
		opts = opts.Culled()
	}
	return opts
}

func runANSI(ctx context.Context, opts loop.SessionOptions) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "enable raw mode")
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	out := render.NewTerminal(os.Stdout, draw.DefaultTermSizeFunc)
	out.Start()
	defer out.Stop()

	keys := input.NewTerminalSource(os.Stdin, loopconfig.KeyHoldDuration)
	defer keys.Close()

	opts.Keys = keys
	opts.Renderer = out
	return loop.NewSession(opts).Run(ctx)
}

func runTcell(ctx context.Context, opts loop.SessionOptions) error {
	sc, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := sc.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer sc.Fini()

	screen := render.NewScreen(sc, loopconfig.KeyHoldDuration)
	screen.Start()

	opts.Keys = screen
	opts.Renderer = screen
	return loop.NewSession(opts).Run(ctx)
}
