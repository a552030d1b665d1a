package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log line should be valid JSON")
	return entry
}

func TestNewWithOptions(t *testing.T) {
	logger := NewWithOptions(
		WithLevel(slog.LevelDebug),
		WithOutput(&bytes.Buffer{}),
		WithFormat("text"),
	)

	require.NotNil(t, logger, "NewWithOptions() should not return nil")
}

func TestNewJSONDefault(t *testing.T) {
	require.NotNil(t, NewJSONDefault(), "NewJSONDefault() should not return nil")
}

func TestLogger_InfoContext_AddsRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewJSON(buf, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	logger.InfoContext(ctx, "quote submitted", "quote_id", 7)

	entry := decodeLine(t, buf)
	assert.Equal(t, "quote submitted", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.EqualValues(t, 7, entry["quote_id"])
}

func TestLogger_ContextWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewJSON(buf, slog.LevelInfo)

	ctx := ContextWithAttrs(context.Background(), "actor_id", 3)
	ctx = ContextWithAttrs(ctx, "actor_role", "admin")
	logger.WarnContext(ctx, "forbidden")

	entry := decodeLine(t, buf)
	assert.EqualValues(t, 3, entry["actor_id"])
	assert.Equal(t, "admin", entry["actor_role"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestLogger_WithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewJSON(buf, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	scoped := WithContext(ctx, base)
	scoped.Info("no context call")

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestLogger_WithContext_EmptyContextReturnsSameLogger(t *testing.T) {
	base := NewJSON(&bytes.Buffer{}, slog.LevelInfo)
	assert.Same(t, base, WithContext(context.Background(), base))
}

func TestLogger_Service(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithOptions(WithOutput(buf), WithService("procurement"))

	logger.Info("started")

	entry := decodeLine(t, buf)
	assert.Equal(t, "procurement", entry["service"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewJSON(buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.DebugContext(context.Background(), "dropped too")
	assert.Empty(t, buf.String(), "records below the configured level should be dropped")

	logger.ErrorContext(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelInfo)

	logger.Info("text message", "key", "value")

	assert.Contains(t, buf.String(), "msg=\"text message\"")
	assert.Contains(t, buf.String(), "key=value")
}

func TestNoOpLogger(t *testing.T) {
	logger := NoOpLogger()
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		logger.ErrorContext(context.Background(), "ignored")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
