package logger

import (
	"io"
	"log/slog"
)

// Option is a function that configures a logger
type Option func(*Config)

// WithLevel sets the minimum level
func WithLevel(level slog.Level) Option {
	return func(c *Config) { c.Level = level }
}

// WithLevelName sets the minimum level from a config string, see ParseLevel
func WithLevelName(level string) Option {
	return func(c *Config) { c.Level = ParseLevel(level) }
}

// WithOutput sets the output writer
func WithOutput(output io.Writer) Option {
	return func(c *Config) { c.Output = output }
}

// WithFormat selects "json" or "text"
func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

// WithService tags every record with the service name
func WithService(name string) Option {
	return func(c *Config) { c.Service = name }
}
