package borrowbook

import (
	"github.com/bibliofleet/lending-go/core"
)

type decisionKind int

const (
	decisionNewLoan decisionKind = iota
	decisionExtension
	decisionRejected
)

// Decision is the tagged outcome of deciding a borrow command against the
// book's lending state: a new loan, an extension of the caller's own active
// loan, or a rejection with a domain error.
type Decision struct {
	kind   decisionKind
	record core.BorrowRecord
	err    error
}

// NewLoanDecision creates a Decision that opens a fresh borrow record.
func NewLoanDecision(record core.BorrowRecord) Decision {
	return Decision{kind: decisionNewLoan, record: record}
}

// ExtensionDecision creates a Decision that moves the active record's due date.
func ExtensionDecision(record core.BorrowRecord) Decision {
	return Decision{kind: decisionExtension, record: record}
}

// RejectedDecision creates a Decision that rejects the command with a domain error.
func RejectedDecision(err error) Decision {
	return Decision{kind: decisionRejected, err: err}
}

// IsNewLoan reports whether the decision opens a fresh borrow record.
func (d Decision) IsNewLoan() bool {
	return d.kind == decisionNewLoan
}

// IsExtension reports whether the decision extends the caller's active record.
func (d Decision) IsExtension() bool {
	return d.kind == decisionExtension
}

// IsRejected reports whether the decision rejects the command.
func (d Decision) IsRejected() bool {
	return d.kind == decisionRejected
}

// Record returns the borrow record to write. Only meaningful for
// new-loan and extension decisions.
func (d Decision) Record() core.BorrowRecord {
	return d.record
}

// Err returns the domain error of a rejected decision, nil otherwise.
func (d Decision) Err() error {
	return d.err
}

// Decide implements the business logic to determine whether a book can be borrowed.
// This is a pure function with no side effects - it takes the current lending state
// and a command and returns the decision based on the business rules.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a borrower with BorrowerID
//	WHEN: BorrowBook command is received
//	THEN: a new active borrow record is opened with due-at = borrowed-at + due-days
//	EXTENSION: if the book is already held by this borrower, the active record's
//	           due-at is pushed out by due-days from the previous due-at
//	ERROR: core.ErrBookNotFound if the book does not exist
//	ERROR: core.ErrBookAlreadyBorrowed if the book is held by a different borrower
func Decide(state core.LendingState, command Command) Decision {
	if !state.BookExists {
		return RejectedDecision(core.ErrBookNotFound)
	}

	if state.IsBorrowedBy(command.BorrowerID) {
		return ExtensionDecision(state.ActiveRecord.Extended(command.DueDays))
	}

	if state.IsBorrowed() {
		return RejectedDecision(core.ErrBookAlreadyBorrowed)
	}

	return NewLoanDecision(
		core.BuildBorrowRecord(
			command.BookID,
			command.BorrowerID,
			command.DueDays,
			command.OccurredAt,
		),
	)
}
