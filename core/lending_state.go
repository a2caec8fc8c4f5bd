package core

import "github.com/google/uuid"

// LendingState is the per-book snapshot the lending Decide functions operate on.
// It is read atomically by the command handlers before every decision.
//
// The book's status is derived: it is borrowed iff ActiveRecord is non-nil.
// There is no independently stored status flag that could diverge from the ledger.
type LendingState struct {
	BookExists   bool
	ActiveRecord *BorrowRecord // nil when the book is not lent out
}

// IsBorrowed reports whether the book currently has an active borrow record.
func (s LendingState) IsBorrowed() bool {
	return s.ActiveRecord != nil
}

// IsBorrowedBy reports whether the book is currently held by the given borrower.
func (s LendingState) IsBorrowedBy(borrowerID uuid.UUID) bool {
	return s.ActiveRecord != nil && s.ActiveRecord.BorrowerID == borrowerID
}
