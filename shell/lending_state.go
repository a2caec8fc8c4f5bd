package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
)

// ReadsLendingState is the read side a command handler needs to snapshot
// a book's lending state before deciding.
type ReadsLendingState interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (catalogstore.BookRow, error)
	ActiveBorrow(ctx context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error)
}

// LoadLendingState reads the book row and its active borrow record and maps them
// into the core state the Decide functions operate on. A missing book is not an
// error here; it becomes a zero-valued state and the decision rejects the command.
func LoadLendingState(ctx context.Context, store ReadsLendingState, bookID uuid.UUID) (core.LendingState, error) {
	if _, err := store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, catalogstore.ErrBookNotFound) {
			return core.LendingState{}, nil
		}

		return core.LendingState{}, err
	}

	active, err := store.ActiveBorrow(ctx, bookID)
	if err != nil {
		if errors.Is(err, catalogstore.ErrNoActiveBorrow) {
			return core.LendingState{BookExists: true}, nil
		}

		return core.LendingState{}, err
	}

	record := BorrowRecordFromRow(active)

	return core.LendingState{BookExists: true, ActiveRecord: &record}, nil
}

// BorrowRecordFromRow maps a stored borrow row into the core domain record.
func BorrowRecordFromRow(row catalogstore.BorrowRow) core.BorrowRecord {
	return core.BorrowRecord{
		ID:         row.ID,
		BookID:     row.BookID,
		BorrowerID: row.BorrowerID,
		BorrowedAt: row.BorrowedAt,
		DueAt:      row.DueAt,
		ReturnedAt: row.ReturnedAt,
	}
}

// BorrowRowFromRecord maps a core domain record into its storage representation.
func BorrowRowFromRecord(record core.BorrowRecord) catalogstore.BorrowRow {
	return catalogstore.BorrowRow{
		ID:         record.ID,
		BookID:     record.BookID,
		BorrowerID: record.BorrowerID,
		BorrowedAt: record.BorrowedAt,
		DueAt:      record.DueAt,
		ReturnedAt: record.ReturnedAt,
	}
}
