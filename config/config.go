// Package config loads the whiteboard client's configuration from defaults,
// an optional TOML, YAML or JSON file and WHITEBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. WHITEBOARD_SERVER_URL.
const EnvPrefix = "WHITEBOARD"

// Config holds the complete client configuration.
type Config struct {
	// Server configures the board connection.
	Server ServerConfig `toml:"server" json:"server" yaml:"server" envconfig:"server"`

	// User identifies the local user, whose own cursor is never drawn.
	User UserConfig `toml:"user" json:"user" yaml:"user" envconfig:"user"`

	// Window configures the client window.
	Window WindowConfig `toml:"window" json:"window" yaml:"window" envconfig:"window"`

	// Cursor configures cursor sharing.
	Cursor CursorConfig `toml:"cursor" json:"cursor" yaml:"cursor" envconfig:"cursor"`

	// Log configures structured logging.
	Log LogConfig `toml:"log" json:"log" yaml:"log" envconfig:"log"`

	// Debug logs per-frame render stats and shows an FPS overlay.
	Debug bool `toml:"debug" json:"debug" yaml:"debug" envconfig:"debug"`

	// ScreenshotDir receives scripted screenshots.
	ScreenshotDir string `toml:"screenshot_dir" json:"screenshot_dir" yaml:"screenshot_dir" envconfig:"screenshot_dir"`
}

// ServerConfig holds the realtime channel settings.
type ServerConfig struct {
	// URL is the websocket endpoint, ws:// or wss://.
	URL string `toml:"url" json:"url" yaml:"url" envconfig:"url"`

	// BoardSlug identifies the board to join.
	BoardSlug string `toml:"board_slug" json:"board_slug" yaml:"board_slug" envconfig:"board_slug"`

	// AuthToken authenticates the join.
	AuthToken string `toml:"auth_token" json:"auth_token" yaml:"auth_token" envconfig:"auth_token"`

	// OpenTimeoutMs bounds the connection handshake.
	OpenTimeoutMs int `toml:"open_timeout_ms" json:"open_timeout_ms" yaml:"open_timeout_ms" envconfig:"open_timeout_ms"`

	// ReplyTimeoutMs bounds the wait for a request's reply.
	ReplyTimeoutMs int `toml:"reply_timeout_ms" json:"reply_timeout_ms" yaml:"reply_timeout_ms" envconfig:"reply_timeout_ms"`
}

// OpenTimeout returns OpenTimeoutMs as a duration.
func (s ServerConfig) OpenTimeout() time.Duration {
	return time.Duration(s.OpenTimeoutMs) * time.Millisecond
}

// ReplyTimeout returns ReplyTimeoutMs as a duration.
func (s ServerConfig) ReplyTimeout() time.Duration {
	return time.Duration(s.ReplyTimeoutMs) * time.Millisecond
}

// UserConfig identifies the signed-in user. A zero ID leaves the local user
// unknown.
type UserConfig struct {
	ID    int64  `toml:"id" json:"id" yaml:"id" envconfig:"id"`
	Name  string `toml:"name" json:"name" yaml:"name" envconfig:"name"`
	Email string `toml:"email" json:"email" yaml:"email" envconfig:"email"`
}

// WindowConfig holds the window settings.
type WindowConfig struct {
	Width  int    `toml:"width" json:"width" yaml:"width" envconfig:"width"`
	Height int    `toml:"height" json:"height" yaml:"height" envconfig:"height"`
	Title  string `toml:"title" json:"title" yaml:"title" envconfig:"title"`
}

// CursorConfig holds cursor sharing settings.
type CursorConfig struct {
	// ThrottleMs is the minimum gap between two cursor sends.
	ThrottleMs int `toml:"throttle_ms" json:"throttle_ms" yaml:"throttle_ms" envconfig:"throttle_ms"`
}

// Throttle returns ThrottleMs as a duration.
func (c CursorConfig) Throttle() time.Duration {
	return time.Duration(c.ThrottleMs) * time.Millisecond
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level" envconfig:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format" yaml:"format" envconfig:"format"`
}

// SlogLevel parses Level. Unknown levels map to info.
func (l LogConfig) SlogLevel() slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lv
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "ws://localhost:8080/ws",
			OpenTimeoutMs:  5000,
			ReplyTimeoutMs: 10000,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Whiteboard",
		},
		Cursor: CursorConfig{
			ThrottleMs: 300,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		ScreenshotDir: "screenshots",
	}
}

// ApplyEnv overrides fields from WHITEBOARD_* environment variables. Unset
// variables leave fields untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}
	return nil
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks every field and returns all problems joined, or nil.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if u, err := url.Parse(c.Server.URL); err != nil || c.Server.URL == "" {
		invalid("server.url", "invalid url %q", c.Server.URL)
	} else if u.Scheme != "ws" && u.Scheme != "wss" {
		invalid("server.url", "scheme must be ws or wss, got %q", u.Scheme)
	}
	if c.Server.OpenTimeoutMs <= 0 {
		invalid("server.open_timeout_ms", "must be positive")
	}
	if c.Server.ReplyTimeoutMs <= 0 {
		invalid("server.reply_timeout_ms", "must be positive")
	}

	if c.User.ID < 0 {
		invalid("user.id", "must not be negative")
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window", "size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Cursor.ThrottleMs < 0 {
		invalid("cursor.throttle_ms", "must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		invalid("log.level", "unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		invalid("log.format", "unknown format %q", c.Log.Format)
	}

	return errors.Join(errs...)
}
