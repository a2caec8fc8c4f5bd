// Package catalogstore defines the storage contracts shared by all engines:
// the book store (book rows with per-book optimistic concurrency) and the
// borrow ledger (at most one active borrow record per book, full history kept).
//
// Engines implement the contracts in sub-packages:
//
//   - postgresengine: goqu-built SQL executed through a database adapter
//     (pgx pool, database/sql, or sqlx)
//   - memoryengine: in-process engine with per-book locking, used in tests
//     and for local development
//
// Every conditional write re-asserts its precondition atomically and returns
// ErrConcurrencyConflict when the precondition no longer holds, so callers can
// re-read state and decide again.
package catalogstore
