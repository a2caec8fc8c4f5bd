package catalogstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookRow is a book record as the book store persists it.
// Version backs the compare-and-set on updates; status is not stored,
// it is derived from the borrow ledger at read time.
type BookRow struct {
	ID            uuid.UUID
	Title         string
	Authors       []string
	Code          *string
	Publisher     *string
	PublishedDate *string
	ThumbnailURL  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       uint64
}

// BorrowRow is a borrow record as the borrow ledger persists it.
// ReturnedAt is nil while the record is active.
type BorrowRow struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

// RemovalRow is the audit record a book removal leaves behind: why the book
// left the catalog, an optional free-text memo, and when it happened.
type RemovalRow struct {
	BookID    uuid.UUID
	Reason    string
	Memo      *string
	RemovedAt time.Time
}

// Selection describes a catalog listing window.
// Keyword, when set, restricts results to titles containing it (case-insensitive).
type Selection struct {
	Keyword *string
	Limit   int
	Offset  int
}

// BookStore is the contract for book record storage.
type BookStore interface {
	// InsertBook stores a new book row. It fails with ErrDuplicateBook when a
	// row with the same ID already exists.
	InsertBook(ctx context.Context, row BookRow) error

	// GetBook returns the book row or ErrBookNotFound.
	GetBook(ctx context.Context, bookID uuid.UUID) (BookRow, error)

	// ListBooks returns one page of book rows ordered by (created_at, id) plus
	// the total number of rows matching the selection's keyword, independent of
	// the page window.
	ListBooks(ctx context.Context, selection Selection) ([]BookRow, int64, error)

	// UpdateBook replaces the row's mutable fields, guarded by a compare-and-set
	// on the version column. It fails with ErrConcurrencyConflict when the row
	// was changed or removed since it was read.
	UpdateBook(ctx context.Context, row BookRow, expectedVersion uint64) error

	// RemoveBook deletes the book row and records the removal audit trail,
	// guarded by "no active borrow exists". It fails with
	// ErrConcurrencyConflict when the guard does not hold anymore.
	// Historical borrow records are retained.
	RemoveBook(ctx context.Context, removal RemovalRow) error
}

// BorrowLedger is the contract for borrow record storage.
type BorrowLedger interface {
	// ActiveBorrow returns the book's active borrow record or ErrNoActiveBorrow.
	ActiveBorrow(ctx context.Context, bookID uuid.UUID) (BorrowRow, error)

	// ActiveBorrows returns the active borrow records for the given books.
	// Books without an active record are simply absent from the result.
	ActiveBorrows(ctx context.Context, bookIDs []uuid.UUID) ([]BorrowRow, error)

	// OpenBorrow appends a fresh active record, guarded by "the book exists and
	// has no active borrow". It fails with ErrConcurrencyConflict when the guard
	// does not hold anymore.
	OpenBorrow(ctx context.Context, row BorrowRow) error

	// ExtendBorrow moves the record's due date, guarded by "the record is still
	// active". It fails with ErrConcurrencyConflict otherwise.
	ExtendBorrow(ctx context.Context, recordID uuid.UUID, dueAt time.Time) error

	// CloseBorrow sets the record's returned-at, guarded by "the record is still
	// active". It fails with ErrConcurrencyConflict otherwise.
	CloseBorrow(ctx context.Context, recordID uuid.UUID, returnedAt time.Time) error
}

// Store combines both contracts; the engines implement it as one unit so that
// lending mutations can guard across books and ledger atomically.
type Store interface {
	BookStore
	BorrowLedger
}
