// Package logger provides the structured slog logger shared by every layer of the service
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

// LoggerInterface defines the interface for logging operations
type LoggerInterface interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
}

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Output    io.Writer
	Format    string // "json" or "text"
	AddSource bool
	// Service is attached to every record when not empty
	Service string
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Output:    os.Stdout,
		Format:    "json",
		AddSource: false,
	}
}

// New creates a new logger instance with the given configuration.
// Records logged through the *Context methods carry the chi request id and
// any attributes stored with ContextWithAttrs.
func New(config Config) LoggerInterface {
	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case "text":
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	handler = &contextHandler{handler: handler}
	l := slog.New(handler)
	if config.Service != "" {
		l = l.With("service", config.Service)
	}

	return &Logger{Logger: l}
}

// NewWithOptions creates a new logger with options
func NewWithOptions(opts ...Option) LoggerInterface {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return New(config)
}

// NewJSON creates a new JSON logger
func NewJSON(output io.Writer, level slog.Level) LoggerInterface {
	return NewWithOptions(WithOutput(output), WithLevel(level), WithFormat("json"))
}

// NewText creates a new text logger
func NewText(output io.Writer, level slog.Level) LoggerInterface {
	return NewWithOptions(WithOutput(output), WithLevel(level), WithFormat("text"))
}

// NewJSONDefault creates a new JSON logger with default settings
func NewJSONDefault() LoggerInterface {
	return New(DefaultConfig())
}

type attrsKey struct{}

// ContextWithAttrs stores key/value pairs in ctx so that every record logged
// with that context includes them
func ContextWithAttrs(ctx context.Context, args ...any) context.Context {
	existing, _ := ctx.Value(attrsKey{}).([]any)
	merged := make([]any, 0, len(existing)+len(args))
	merged = append(merged, existing...)
	merged = append(merged, args...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// WithContext returns a logger that already carries the request id and the
// context attributes of ctx, for code paths that log without a context
func WithContext(ctx context.Context, l LoggerInterface) LoggerInterface {
	base, ok := l.(*Logger)
	if !ok {
		return l
	}
	args := contextArgs(ctx)
	if len(args) == 0 {
		return l
	}
	return &Logger{Logger: base.Logger.With(args...)}
}

func contextArgs(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var args []any
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		args = append(args, "request_id", reqID)
	}
	if extra, ok := ctx.Value(attrsKey{}).([]any); ok {
		args = append(args, extra...)
	}
	return args
}

// contextHandler decorates records with values pulled from the context
type contextHandler struct {
	handler slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if args := contextArgs(ctx); len(args) > 0 {
		r.Add(args...)
	}
	return h.handler.Handle(ctx, r)
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{handler: h.handler.WithGroup(name)}
}

// InfoContext logs at the info level with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelInfo, msg, args...)
}

// ErrorContext logs at the error level with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelError, msg, args...)
}

// WarnContext logs at the warn level with context
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelWarn, msg, args...)
}

// DebugContext logs at the debug level with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelDebug, msg, args...)
}

// NoOpLogger returns a logger that does nothing - useful for testing
func NoOpLogger() LoggerInterface {
	return &Logger{
		Logger: slog.New(noOpHandler{}),
	}
}

type noOpHandler struct{}

func (h noOpHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (h noOpHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (h noOpHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h noOpHandler) WithGroup(_ string) slog.Handler { return h }

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
