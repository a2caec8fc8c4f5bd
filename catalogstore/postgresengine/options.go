package postgresengine

import (
	"github.com/bibliofleet/lending-go/catalogstore"
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithBooksTableName sets the books table name for the Engine.
func WithBooksTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return catalogstore.ErrEmptyTableName
		}

		e.booksTable = tableName

		return nil
	}
}

// WithBorrowsTableName sets the borrow records table name for the Engine.
func WithBorrowsTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return catalogstore.ErrEmptyTableName
		}

		e.borrowsTable = tableName

		return nil
	}
}

// WithRemovalsTableName sets the removal audit table name for the Engine.
func WithRemovalsTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return catalogstore.ErrEmptyTableName
		}

		e.removalsTable = tableName

		return nil
	}
}

// WithLogger sets the logger for the Engine.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Row counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger catalogstore.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine.
// Log records carry trace/span correlation when tracing is enabled as well.
func WithContextualLogger(logger catalogstore.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine. The collector
// receives query/write durations, database errors, and lost guarded writes.
func WithMetrics(collector catalogstore.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine. Every statement
// executes inside its own span.
func WithTracing(collector catalogstore.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
