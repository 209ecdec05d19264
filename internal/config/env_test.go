package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ASTEROIDS_TEST_STR", "value")
	t.Setenv("ASTEROIDS_TEST_NUM", "2.5")
	t.Setenv("ASTEROIDS_TEST_BAD", "nope")
	t.Setenv("ASTEROIDS_TEST_BOOL", "false")

	assert.Equal(t, "value", GetEnv("ASTEROIDS_TEST_STR", "x"))
	assert.Equal(t, "x", GetEnv("ASTEROIDS_TEST_MISSING", "x"))

	assert.Equal(t, 2.5, GetEnvFloat("ASTEROIDS_TEST_NUM", 1))
	assert.Equal(t, 1.0, GetEnvFloat("ASTEROIDS_TEST_BAD", 1))
	assert.Equal(t, 1.0, GetEnvFloat("ASTEROIDS_TEST_MISSING", 1))

	assert.False(t, GetEnvBool("ASTEROIDS_TEST_BOOL", true))
	assert.True(t, GetEnvBool("ASTEROIDS_TEST_BAD", true))
	assert.True(t, GetEnvBool("ASTEROIDS_TEST_MISSING", true))
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.TickRate)
	assert.Equal(t, "2222", s.SSHPort)
	assert.True(t, s.CullOffscreen)
	assert.Equal(t, time.Second/60, s.TickTime())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("WEB_PORT=9999\nTICK_RATE=30\n"), 0o600))

	// The environment overrides the file.
	t.Setenv("TICK_RATE", "120")
	// Loaded values land in the process environment; clear them afterwards.
	t.Setenv("WEB_PORT", "")
	require.NoError(t, os.Unsetenv("WEB_PORT"))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9999", s.WebPort)
	assert.Equal(t, 120.0, s.TickRate)
}

func TestLoadRejectsBadTickRate(t *testing.T) {
	t.Setenv("TICK_RATE", "0")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Settings{LogLevel: "warn"}.Logger(&buf, "test")
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	logger = Settings{LogLevel: "loud"}.Logger(&buf, "test")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
