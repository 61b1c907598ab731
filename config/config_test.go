package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 300*time.Millisecond, cfg.Cursor.Throttle())
	assert.Equal(t, 5*time.Second, cfg.Server.OpenTimeout())
	assert.Equal(t, 10*time.Second, cfg.Server.ReplyTimeout())
	assert.Equal(t, "screenshots", cfg.ScreenshotDir)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.URL = "http://example.com/ws"
	cfg.Server.OpenTimeoutMs = 0
	cfg.User.ID = -3
	cfg.Window.Width = -1
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)

	var fields []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve), "unexpected error type %T", e)
		fields = append(fields, ve.Field)
	}
	assert.Equal(t, []string{
		"server.url",
		"server.open_timeout_ms",
		"user.id",
		"window",
		"log.level",
		"log.format",
	}, fields)
	assert.Contains(t, err.Error(), `config: server.url: scheme must be ws or wss, got "http"`)
}

func TestValidateRejectsEmptyURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.URL = ""

	var ve *ValidationError
	require.ErrorAs(t, cfg.Validate(), &ve)
	assert.Equal(t, "server.url", ve.Field)
}

func TestApplyEnvOverridesOnlySetVariables(t *testing.T) {
	t.Setenv("WHITEBOARD_SERVER_URL", "wss://boards.example.com/ws")
	t.Setenv("WHITEBOARD_SERVER_BOARD_SLUG", "team-sync")
	t.Setenv("WHITEBOARD_CURSOR_THROTTLE_MS", "120")
	t.Setenv("WHITEBOARD_DEBUG", "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "wss://boards.example.com/ws", cfg.Server.URL)
	assert.Equal(t, "team-sync", cfg.Server.BoardSlug)
	assert.Equal(t, 120, cfg.Cursor.ThrottleMs)
	assert.True(t, cfg.Debug)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestApplyEnvSetsLocalUser(t *testing.T) {
	t.Setenv("WHITEBOARD_USER_ID", "42")
	t.Setenv("WHITEBOARD_USER_NAME", "Ada")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, UserConfig{ID: 42, Name: "Ada"}, cfg.User)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("WHITEBOARD_WINDOW_WIDTH", "wide")
	err := DefaultConfig().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply environment")
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}
