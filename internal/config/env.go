// Package config provides shared configuration utilities.
package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	loopconfig "github.com/tomz197/asteroids-wire/internal/loop/config"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvFloat is GetEnv for numbers. Unparsable values yield fallback.
func GetEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetEnvBool is GetEnv for flags. Unparsable values yield fallback.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// Settings holds the runtime configuration of all binaries.
type Settings struct {
	LogLevel      string
	TickRate      float64 // Ticks per second
	FixedStep     bool    // Use a fixed delta instead of wall time
	CullOffscreen bool    // Drop entities that leave the arena

	SSHHost     string
	SSHPort     string
	HostKeyPath string

	WebHost        string
	WebPort        string
	SSHDisplayHost string // Host shown on the landing page
}

// Load reads the optional .env files (default ".env"), then the environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, errors.Wrapf(err, "load %s", f)
		}
	}

	s := Settings{
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		TickRate:      GetEnvFloat("TICK_RATE", loopconfig.TickRate),
		FixedStep:     GetEnvBool("FIXED_STEP", false),
		CullOffscreen: GetEnvBool("CULL_OFFSCREEN", true),

		SSHHost:     GetEnv("SSH_HOST", "::"),
		SSHPort:     GetEnv("SSH_PORT", "2222"),
		HostKeyPath: GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),

		WebHost:        GetEnv("WEB_HOST", "0.0.0.0"),
		WebPort:        GetEnv("WEB_PORT", "8080"),
		SSHDisplayHost: GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
	}
	if s.TickRate <= 0 {
		return Settings{}, errors.Errorf("TICK_RATE must be positive, got %v", s.TickRate)
	}
	return s, nil
}

// TickTime returns the duration of one tick.
func (s Settings) TickTime() time.Duration {
	return time.Duration(float64(time.Second) / s.TickRate)
}

// Logger creates a timestamped logger writing to w at the configured level.
func (s Settings) Logger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", s.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
