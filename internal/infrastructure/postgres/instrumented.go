package postgres

import (
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/wms-platform/replenishment-service/pkg/logging"
	"github.com/wms-platform/replenishment-service/pkg/metrics"
	"github.com/wms-platform/replenishment-service/pkg/tracing"
)

const (
	instrumentationSpanKey  = "instrumentation:span"
	instrumentationStartKey = "instrumentation:start"
)

// InstrumentationPlugin is a gorm plugin that records metrics, logs and a
// client span for every statement
type InstrumentationPlugin struct {
	database string
	metrics  *metrics.Metrics
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewInstrumentationPlugin creates a new instrumentation plugin
func NewInstrumentationPlugin(database string, m *metrics.Metrics, logger *logging.Logger) *InstrumentationPlugin {
	return &InstrumentationPlugin{
		database: database,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("postgres"),
	}
}

// Name implements gorm.Plugin
func (p *InstrumentationPlugin) Name() string {
	return "replenishment:instrumentation"
}

// Initialize implements gorm.Plugin
func (p *InstrumentationPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("instrumentation:before_create", p.before("create")),
		cb.Create().After("gorm:create").Register("instrumentation:after_create", p.after("create")),
		cb.Query().Before("gorm:query").Register("instrumentation:before_query", p.before("query")),
		cb.Query().After("gorm:query").Register("instrumentation:after_query", p.after("query")),
		cb.Update().Before("gorm:update").Register("instrumentation:before_update", p.before("update")),
		cb.Update().After("gorm:update").Register("instrumentation:after_update", p.after("update")),
		cb.Delete().Before("gorm:delete").Register("instrumentation:before_delete", p.before("delete")),
		cb.Delete().After("gorm:delete").Register("instrumentation:after_delete", p.after("delete")),
		cb.Row().Before("gorm:row").Register("instrumentation:before_row", p.before("row")),
		cb.Row().After("gorm:row").Register("instrumentation:after_row", p.after("row")),
		cb.Raw().Before("gorm:raw").Register("instrumentation:before_raw", p.before("raw")),
		cb.Raw().After("gorm:raw").Register("instrumentation:after_raw", p.after("raw")),
	)
}

func (p *InstrumentationPlugin) before(operation string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		ctx, span := p.tracer.Start(tx.Statement.Context, "postgres."+operation,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(tracing.DatabaseSpanAttributes(p.database, operation, tx.Statement.Table)...),
		)
		tx.Statement.Context = ctx
		tx.InstanceSet(instrumentationSpanKey, span)
		tx.InstanceSet(instrumentationStartKey, time.Now())
	}
}

func (p *InstrumentationPlugin) after(operation string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		var duration time.Duration
		if v, ok := tx.InstanceGet(instrumentationStartKey); ok {
			if start, ok := v.(time.Time); ok {
				duration = time.Since(start)
			}
		}

		// a lookup that finds nothing is not a failed statement
		success := tx.Error == nil || errors.Is(tx.Error, gorm.ErrRecordNotFound)
		table := tx.Statement.Table
		if table == "" {
			table = "raw"
		}

		if p.metrics != nil {
			p.metrics.RecordDBOperation(table, operation, success, duration)
		}
		if p.logger != nil {
			p.logger.DatabaseQuery(tx.Statement.Context, table, operation, duration, success, tx.Statement.RowsAffected)
		}

		v, ok := tx.InstanceGet(instrumentationSpanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
		if !success {
			span.RecordError(tx.Error)
			span.SetStatus(codes.Error, tx.Error.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}
