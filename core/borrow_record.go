package core

import (
	"time"

	"github.com/google/uuid"
)

// BorrowRecord is one lending transaction for a book.
// It is created when a borrow succeeds, its due date may be extended while active,
// and it is closed (ReturnedAt set) on return. Records are never deleted.
type BorrowRecord struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

// BuildBorrowRecord creates a fresh, active borrow record.
// The due date is computed from the borrow instant.
func BuildBorrowRecord(bookID uuid.UUID, borrowerID uuid.UUID, dueDays DueDays, occurredAt time.Time) BorrowRecord {
	borrowedAt := ToOccurredAt(occurredAt)

	return BorrowRecord{
		ID:         uuid.New(),
		BookID:     bookID,
		BorrowerID: borrowerID,
		BorrowedAt: borrowedAt,
		DueAt:      dueDays.DueDateFrom(borrowedAt),
	}
}

// IsActive reports whether the record is still open, i.e. the book has not been returned.
func (r BorrowRecord) IsActive() bool {
	return r.ReturnedAt == nil
}

// Extended returns a copy of the record with the due date pushed out by dueDays,
// counted from the previous due date, not from now. BorrowedAt is preserved.
func (r BorrowRecord) Extended(dueDays DueDays) BorrowRecord {
	extended := r
	extended.DueAt = dueDays.DueDateFrom(r.DueAt)

	return extended
}

// Closed returns a copy of the record with ReturnedAt set.
func (r BorrowRecord) Closed(occurredAt time.Time) BorrowRecord {
	returnedAt := ToOccurredAt(occurredAt)

	closed := r
	closed.ReturnedAt = &returnedAt

	return closed
}
