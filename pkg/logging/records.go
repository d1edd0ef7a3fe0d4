package logging

import (
	"context"
	"log/slog"
	"time"
)

// Event records a published domain event at info level
func (l *Logger) Event(ctx context.Context, eventType string, data map[string]any) {
	l.WithContext(ctx).Info("Domain event published", appendMap([]any{"eventType", eventType}, data)...)
}

// Performance records the duration and outcome of a use case
func (l *Logger) Performance(ctx context.Context, operation string, duration time.Duration, success bool, details map[string]any) {
	attrs := []any{"operation", operation, "durationMs", duration.Milliseconds(), "success", success}
	l.WithContext(ctx).Info("Operation timing", appendMap(attrs, details)...)
}

// DatabaseQuery records one statement against table. Successful queries are debug only.
func (l *Logger) DatabaseQuery(ctx context.Context, table, operation string, duration time.Duration, success bool, rowsAffected int64) {
	l.outcome(ctx, "Database query", success,
		"table", table,
		"operation", operation,
		"durationMs", duration.Milliseconds(),
		"success", success,
		"rowsAffected", rowsAffected,
	)
}

// KafkaPublish records one produce call. Successful publishes are debug only.
func (l *Logger) KafkaPublish(ctx context.Context, topic, eventType string, success bool, duration time.Duration) {
	l.outcome(ctx, "Kafka publish", success,
		"topic", topic,
		"eventType", eventType,
		"success", success,
		"durationMs", duration.Milliseconds(),
	)
}

// CacheAccess records a snapshot cache operation. A failed access is a warning
// because callers fall back to the database.
func (l *Logger) CacheAccess(ctx context.Context, key, operation string, hit bool, err error) {
	logger := l.WithContext(ctx)
	if err != nil {
		logger.Warn("Cache access failed", "key", key, "operation", operation, "error", err.Error())
		return
	}
	logger.Debug("Cache access", "key", key, "operation", operation, "hit", hit)
}

func (l *Logger) outcome(ctx context.Context, msg string, success bool, attrs ...any) {
	level := slog.LevelDebug
	if !success {
		level = slog.LevelError
	}
	l.WithContext(ctx).Log(ctx, level, msg, attrs...)
}

func appendMap(attrs []any, m map[string]any) []any {
	for k, v := range m {
		attrs = append(attrs, k, v)
	}
	return attrs
}
