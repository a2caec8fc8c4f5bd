package postgresengine

import (
	"context"
	"fmt"
	"time"

	"github.com/bibliofleet/lending-go/catalogstore"
)

const (
	metricQueryDuration        = "catalogstore_query_duration_seconds"
	metricWriteDuration        = "catalogstore_write_duration_seconds"
	metricDatabaseErrors       = "catalogstore_database_errors_total"
	metricConcurrencyConflicts = "catalogstore_concurrency_conflicts_total"

	spanNameQuery = "catalogstore.query"
	spanNameWrite = "catalogstore.write"

	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrRowsAffected = "rows_affected"
	spanAttrDurationMS   = "duration_ms"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeDatabase = "database_error"
)

// recordDurationMetrics records an operation duration if the collector is configured.
func (e *Engine) recordDurationMetrics(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	action string,
	status string,
) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: action,
		"status":          status,
	}

	if contextualCollector, ok := e.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		e.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordErrorMetrics counts a failed database interaction if the collector is configured.
func (e *Engine) recordErrorMetrics(ctx context.Context, action string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: action,
		"status":          statusError,
		spanAttrErrorType: errorTypeDatabase,
	}

	if contextualCollector, ok := e.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordConcurrencyConflictMetrics counts a lost guarded write if the collector is configured.
func (e *Engine) recordConcurrencyConflictMetrics(ctx context.Context, action string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: action,
		"conflict_type":   "concurrency",
	}

	if contextualCollector, ok := e.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}

// startSpan starts a tracing span if the tracing collector is configured.
func (e *Engine) startSpan(ctx context.Context, name string, action string) (context.Context, catalogstore.SpanContext) {
	if e.tracingCollector == nil {
		return ctx, nil
	}

	return e.tracingCollector.StartSpan(ctx, name, map[string]string{spanAttrOperation: action})
}

// finishSpanSuccess finishes a span marking the operation successful.
func (e *Engine) finishSpanSuccess(span catalogstore.SpanContext, duration time.Duration, attrs map[string]string) {
	if e.tracingCollector == nil || span == nil {
		return
	}

	span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", durationToMilliseconds(duration)))
	e.tracingCollector.FinishSpan(span, statusSuccess, attrs)
}

// finishSpanError finishes a span marking the operation failed.
func (e *Engine) finishSpanError(span catalogstore.SpanContext, errorType string) {
	if e.tracingCollector == nil || span == nil {
		return
	}

	e.tracingCollector.FinishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}

// logStatementWithDuration logs SQL statements with execution time at debug
// level, with trace correlation when a contextual logger is configured.
func (e *Engine) logStatementWithDuration(ctx context.Context, sqlStatement string, action string, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlStatement)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlStatement)
	}
}

// logOperation logs operational information at info level.
func (e *Engine) logOperation(ctx context.Context, action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logError logs error information at error level.
func (e *Engine) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if e.logger != nil {
		e.logger.Error(message, allArgs...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}
