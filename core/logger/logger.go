package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	writer  io.Writer
	level   slog.Level
	appName string
	json    bool
}

// Option configures logger construction.
type Option func(*config)

// WithDevelopment configures human-readable text output at debug level,
// tagged with the application name.
func WithDevelopment(appName string) Option {
	return func(c *config) {
		c.appName = appName
		c.level = slog.LevelDebug
		c.json = false
	}
}

// WithProduction configures JSON output at info level, tagged with the
// application name.
func WithProduction(appName string) Option {
	return func(c *config) {
		c.appName = appName
		c.level = slog.LevelInfo
		c.json = true
	}
}

// WithWriter overrides the output destination. Defaults to stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithLevel overrides the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// New builds a slog.Logger with the given options.
func New(opts ...Option) *slog.Logger {
	cfg := config{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ho := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.writer, ho)
	} else {
		h = slog.NewTextHandler(cfg.writer, ho)
	}

	log := slog.New(h)
	if cfg.appName != "" {
		log = log.With(slog.String("app", cfg.appName))
	}
	return log
}
