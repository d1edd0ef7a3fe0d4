package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := New(&Config{
		Level:       level,
		ServiceName: "replenishment-service",
		Environment: "test",
		Version:     "dev",
		Output:      buf,
	})
	return logger, buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_ContextAttributes(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	logger.WithContext(ctx).WithOperation("resolve").Info("resolved")

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "replenishment-service", entries[0]["service"])
	assert.Equal(t, "req-1", entries[0]["requestId"])
	assert.Equal(t, "corr-1", entries[0]["correlationId"])
	assert.Equal(t, "resolve", entries[0]["operation"])
	assert.NotContains(t, entries[0], "traceId")
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.CacheAccess(context.Background(), "replenishment:stock:snapshot", "get", true, nil)
	logger.DatabaseQuery(context.Background(), "stock_entries", "insert", time.Millisecond, true, 3)
	assert.Empty(t, buf.String())

	logger.CacheAccess(context.Background(), "replenishment:stock:snapshot", "get", false, errors.New("timeout"))
	logger.KafkaPublish(context.Background(), "wms.stock.events", "wms.stock.snapshot-loaded", false, time.Millisecond)

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "timeout", entries[0]["error"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "wms.stock.events", entries[1]["topic"])
}

func TestLogger_Event(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.Event(context.Background(), "wms.replenishment.divided", map[string]any{"total": 12})

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Domain event published", entries[0]["msg"])
	assert.Equal(t, "wms.replenishment.divided", entries[0]["eventType"])
	assert.EqualValues(t, 12, entries[0]["total"])
}

func TestLogger_WithErrorNil(t *testing.T) {
	logger, _ := newBufferLogger(LevelInfo)
	assert.Same(t, logger, logger.WithError(nil))
}

func TestDefaultConfig_ReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("VERSION", "")

	config := DefaultConfig("replenishment-service")
	assert.Equal(t, LevelDebug, config.Level)
	assert.Equal(t, "staging", config.Environment)
	assert.Equal(t, "unknown", config.Version)
}

func TestLogLevel_UnknownFallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LogLevel("verbose").slogLevel())
	assert.Equal(t, slog.LevelWarn, LevelWarn.slogLevel())
	assert.Equal(t, slog.LevelError, LogLevel("ERROR").slogLevel())
}
