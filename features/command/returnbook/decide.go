package returnbook

import (
	"github.com/bibliofleet/lending-go/core"
)

type decisionKind int

const (
	decisionClose decisionKind = iota
	decisionRejected
)

// Decision is the tagged outcome of deciding a return command against the
// book's lending state: closing the active record, or a rejection with a
// domain error.
type Decision struct {
	kind   decisionKind
	record core.BorrowRecord
	err    error
}

// CloseDecision creates a Decision that closes the active borrow record.
func CloseDecision(record core.BorrowRecord) Decision {
	return Decision{kind: decisionClose, record: record}
}

// RejectedDecision creates a Decision that rejects the command with a domain error.
func RejectedDecision(err error) Decision {
	return Decision{kind: decisionRejected, err: err}
}

// IsClose reports whether the decision closes the active borrow record.
func (d Decision) IsClose() bool {
	return d.kind == decisionClose
}

// IsRejected reports whether the decision rejects the command.
func (d Decision) IsRejected() bool {
	return d.kind == decisionRejected
}

// Record returns the closed borrow record to write. Only meaningful for close decisions.
func (d Decision) Record() core.BorrowRecord {
	return d.record
}

// Err returns the domain error of a rejected decision, nil otherwise.
func (d Decision) Err() error {
	return d.err
}

// Decide implements the business logic to determine whether a book can be returned.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a borrower with BorrowerID
//	WHEN: ReturnBook command is received
//	THEN: the active borrow record is closed (returned-at set)
//	ERROR: core.ErrBookNotFound if the book does not exist
//	ERROR: core.ErrBookNotBorrowed if the book has no active borrow record
//	ERROR: core.ErrNotBorrower if the active record belongs to a different borrower
func Decide(state core.LendingState, command Command) Decision {
	if !state.BookExists {
		return RejectedDecision(core.ErrBookNotFound)
	}

	if !state.IsBorrowed() {
		return RejectedDecision(core.ErrBookNotBorrowed)
	}

	if !state.IsBorrowedBy(command.BorrowerID) {
		return RejectedDecision(core.ErrNotBorrower)
	}

	return CloseDecision(state.ActiveRecord.Closed(command.OccurredAt))
}
