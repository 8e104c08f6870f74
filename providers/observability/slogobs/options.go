package slogobs

import (
	"io"
	"log/slog"
	"os"
)

// Option configures an Observer.
type Option func(*config)

type config struct {
	format    Format
	level     slog.Level
	output    io.Writer
	colors    bool
	component string
	logger    *slog.Logger
}

// WithFormat picks the record rendering. The service default is
// FormatCompact; FormatJSON suits log shippers in front of `serve`.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithLevel sets the minimum level. LevelTrace also prints tool inputs and
// LLM request bodies.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithSettings applies LOG_LEVEL and LOG_FORMAT values as they appear in the
// configuration. An unknown level keeps INFO; an unknown format keeps
// FormatCompact.
func WithSettings(level, format string) Option {
	return func(c *config) {
		if l, err := ParseLevel(level); err == nil {
			c.level = l
		}
		c.format = ParseFormat(format)
	}
}

// WithOutput redirects records. Leave it at stderr for the mcp command:
// stdout carries the protocol stream there.
func WithOutput(output io.Writer) Option {
	return func(c *config) { c.output = output }
}

// WithColors forces ANSI colors on. Without it colors follow the output:
// on for a terminal, off for files and pipes.
func WithColors(enabled bool) Option {
	return func(c *config) { c.colors = enabled }
}

// WithComponent tags every record with AttrComponent, e.g. "http" or "mcp",
// so the server, the MCP bridge and one-shot commands can share a sink.
func WithComponent(name string) Option {
	return func(c *config) { c.component = name }
}

// WithLogger sends records to an existing logger instead of the built-in
// handler. Format, level, output and colors are then ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func applyOptions(opts ...Option) *config {
	cfg := &config{
		format: FormatCompact,
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
