package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

func TestNopLogger_Methods(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	assert.Same(t, logger, logger.With(ports.F("key", "value")))

	logger.SetLevel(ports.LevelError)
	assert.Equal(t, ports.LevelError, logger.Level())
}

func newTextLogger(buf *bytes.Buffer, opts ...ConsoleLoggerOption) *ConsoleLogger {
	base := []ConsoleLoggerOption{
		WithOutput(buf),
		WithLevel(ports.LevelDebug),
		WithTimestamp(false),
		WithLevelLabel(false),
	}
	return NewConsoleLogger(append(base, opts...)...)
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTextLogger(&buf, WithLevelLabel(true))

	logger.Info(context.Background(), "flow opened", ports.F("flow", "hubspot-to-sana"), ports.F("steps", 11))

	assert.Equal(t, "[INFO] flow opened flow=hubspot-to-sana steps=11\n", buf.String())
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTextLogger(&buf, WithJSONFormat(true), WithLevelLabel(true))

	logger.Warn(context.Background(), "copy failed", ports.F("snippet", "token"), ports.F("error", errors.New("no display")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "copy failed", entry["msg"])
	assert.Equal(t, "token", entry["snippet"])
	assert.Equal(t, "no display", entry["error"])
	assert.NotContains(t, entry, "time")
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTextLogger(&buf, WithLevel(ports.LevelWarn))
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "warn message")
	assert.Contains(t, buf.String(), "warn message")

	logger.SetLevel(ports.LevelDebug)
	logger.Debug(ctx, "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestConsoleLogger_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTextLogger(&buf)
	child := logger.With(ports.F("session", "abc"))

	logger.Info(context.Background(), "parent")
	child.Info(context.Background(), "child", ports.F("extra", 1))

	assert.Equal(t, "parent\nchild session=abc extra=1\n", buf.String())
}

func TestConsoleLogger_MasksSensitiveFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTextLogger(&buf)

	logger.Info(context.Background(), "field set", ports.F("field", "hubspotToken"), ports.Secret("value", "pat-na1-123"))

	assert.Equal(t, "field set field=hubspotToken value=[redacted]\n", buf.String())
	assert.NotContains(t, buf.String(), "pat-na1-123")
}

func TestConsoleLogger_WithRedactedKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTextLogger(&buf, WithJSONFormat(true), WithRedactedKeys("Client_Secret"))

	logger.With(ports.F("client_secret", "s3cr3t")).Info(context.Background(), "auth")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, Redacted, entry["client_secret"])
}

func TestLoggerContext(t *testing.T) {
	t.Parallel()

	logger := NewConsoleLogger()
	ctx := context.Background()

	assert.Nil(t, ports.LoggerFromContext(ctx))
	assert.Same(t, logger, ports.LoggerFromContext(ports.ContextWithLogger(ctx, logger)))
}
