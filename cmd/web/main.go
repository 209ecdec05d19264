package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"


	"github.com/tomz197/asteroids-wire/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := settings.Logger(os.Stderr, "web")

	mux := http.NewServeMux()
	mux.HandleFunc("/", landingPage(settings.SSHDisplayHost))
	mux.Handle("/watch", newSpectator(settings, logger))

	srv := &http.Server{
		Addr:              net.JoinHostPort(settings.WebHost, settings.WebPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	logger.Info("Starting web server", "addr", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

func landingPage(sshHost string) http.HandlerFunc {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}

