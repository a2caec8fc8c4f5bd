package removebook

import (
	"github.com/bibliofleet/lending-go/core"
)

type decisionKind int

const (
	decisionRemove decisionKind = iota
	decisionRejected
)

// Decision is the tagged outcome of deciding a remove command against the
// book's lending state: removal, or a rejection with a domain error.
type Decision struct {
	kind decisionKind
	err  error
}

// RemoveDecision creates a Decision that removes the book row.
func RemoveDecision() Decision {
	return Decision{kind: decisionRemove}
}

// RejectedDecision creates a Decision that rejects the command with a domain error.
func RejectedDecision(err error) Decision {
	return Decision{kind: decisionRejected, err: err}
}

// IsRemove reports whether the decision removes the book row.
func (d Decision) IsRemove() bool {
	return d.kind == decisionRemove
}

// IsRejected reports whether the decision rejects the command.
func (d Decision) IsRejected() bool {
	return d.kind == decisionRejected
}

// Err returns the domain error of a rejected decision, nil otherwise.
func (d Decision) Err() error {
	return d.err
}

// Decide implements the business logic to determine whether a book can be removed.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: RemoveBook command is received
//	THEN: the book row is removed; borrow history is retained
//	ERROR: core.ErrBookNotFound if the book does not exist
//	ERROR: core.ErrBookBorrowed if the book has an active borrow record
func Decide(state core.LendingState, _ Command) Decision {
	if !state.BookExists {
		return RejectedDecision(core.ErrBookNotFound)
	}

	if state.IsBorrowed() {
		return RejectedDecision(core.ErrBookBorrowed)
	}

	return RemoveDecision()
}
