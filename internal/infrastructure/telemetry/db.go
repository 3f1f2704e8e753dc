package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"github.com/workify/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSlowQueryThreshold = 200 * time.Millisecond
	startTimeKey              = "telemetry:query_start"
)

// DBInstrumentation records query metrics and marks slow or failed queries
// on the active span. It is registered as a GORM plugin.
type DBInstrumentation struct {
	logger        *zap.Logger
	slowThreshold time.Duration
	logSQL        bool

	queryTotal    *Counter
	queryDuration *Histogram
	slowQueries   *Counter
	pool          metric.Registration
}

// InstrumentDB adds otelgorm tracing when cfg.DBTraceEnabled and always
// registers query metrics and connection pool gauges on meter. Close the
// returned value on shutdown.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, meter metric.Meter, logger *zap.Logger) (*DBInstrumentation, error) {
	if cfg.DBTraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(db.Dialector.Name())}
		if !cfg.DBLogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return nil, fmt.Errorf("failed to register otelgorm: %w", err)
		}
	}

	d := &DBInstrumentation{
		logger:        logger,
		slowThreshold: cfg.DBSlowQueryThresh,
		logSQL:        cfg.DBLogFullSQL,
	}
	if d.slowThreshold <= 0 {
		d.slowThreshold = defaultSlowQueryThreshold
	}

	var err error
	if d.queryTotal, err = NewCounter(meter, "db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if d.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if d.slowQueries, err = NewCounter(meter, "db_slow_query_total", "Queries slower than the configured threshold", "{query}"); err != nil {
		return nil, err
	}
	if err := d.observePool(db, meter); err != nil {
		return nil, err
	}
	if err := db.Use(d); err != nil {
		return nil, err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", cfg.DBTraceEnabled),
		zap.Duration("slow_query_threshold", d.slowThreshold),
	)
	return d, nil
}

func (d *DBInstrumentation) observePool(db *gorm.DB, meter metric.Meter) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}

	d.pool, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		return nil
	}, connections, maxOpen)
	return err
}

// Name implements gorm.Plugin
func (d *DBInstrumentation) Name() string {
	return "workify:db_instrumentation"
}

// Initialize implements gorm.Plugin
func (d *DBInstrumentation) Initialize(db *gorm.DB) error {
	type register func(name string, fn func(*gorm.DB)) error
	cb := db.Callback()
	hooks := []struct {
		op            string
		before, after register
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		operation := operationName(h.op)
		if err := h.before("telemetry:before_"+h.op, markStart); err != nil {
			return err
		}
		if err := h.after("telemetry:after_"+h.op, func(tx *gorm.DB) {
			d.record(tx, operation)
		}); err != nil {
			return err
		}
	}
	return nil
}

func markStart(tx *gorm.DB) {
	tx.InstanceSet(startTimeKey, time.Now())
}

// operationName maps a callback to a SQL verb. Row and raw callbacks are
// resolved from the statement text.
func operationName(op string) string {
	switch op {
	case "create":
		return "INSERT"
	case "query":
		return "SELECT"
	case "update":
		return "UPDATE"
	case "delete":
		return "DELETE"
	default:
		return ""
	}
}

func detectOperation(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, verb) {
			return verb
		}
	}
	return "OTHER"
}

func (d *DBInstrumentation) record(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if operation == "" {
		operation = detectOperation(tx.Statement.SQL.String())
	}

	var elapsed time.Duration
	if v, ok := tx.InstanceGet(startTimeKey); ok {
		if start, ok := v.(time.Time); ok {
			elapsed = time.Since(start)
		}
	}

	op := AttrDBOperation.String(operation)
	d.queryTotal.Inc(ctx, op)
	d.queryDuration.RecordDuration(ctx, elapsed, op)

	table := tx.Statement.Table
	if table == "" {
		table = "unknown"
	}
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("db.sql.table", table),
			attribute.Int64("db.rows_affected", tx.Statement.RowsAffected),
		)
		if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			span.RecordError(tx.Error)
			span.SetStatus(codes.Error, tx.Error.Error())
		}
	}

	if elapsed <= d.slowThreshold {
		return
	}
	d.slowQueries.Inc(ctx, AttrDBTable.String(table))
	if span.IsRecording() {
		span.SetAttributes(attribute.Bool("db.slow_query", true))
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", d.slowThreshold.Milliseconds()),
		))
	}
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("table", table),
		zap.Duration("elapsed", elapsed),
	}
	if d.logSQL {
		fields = append(fields, zap.String("sql", tx.Statement.SQL.String()))
	}
	d.logger.Warn("Slow query", fields...)
}

// Close unregisters the pool gauges
func (d *DBInstrumentation) Close() error {
	if d == nil || d.pool == nil {
		return nil
	}
	return d.pool.Unregister()
}
