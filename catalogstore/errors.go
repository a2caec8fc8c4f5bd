package catalogstore

import "errors"

var (
	// ErrConcurrencyConflict is returned by conditional writes whose guarded
	// precondition no longer holds. Callers re-read state and decide again;
	// the retry shell treats only this error as retryable.
	ErrConcurrencyConflict = errors.New("concurrency conflict detected")

	// ErrBookNotFound is returned when no book row exists for the given ID.
	ErrBookNotFound = errors.New("book row not found")

	// ErrDuplicateBook is returned when inserting a book row whose ID already exists.
	ErrDuplicateBook = errors.New("book row already exists")

	// ErrNoActiveBorrow is returned when a book has no active borrow record.
	ErrNoActiveBorrow = errors.New("no active borrow record")

	// ErrNilDatabaseConnection is returned when an engine is built from a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an engine is configured with an empty table name.
	ErrEmptyTableName = errors.New("table name must not be empty")
)
