// Package getactiveloan implements the Get Active Loan read slice.
//
// It returns the active borrow record of a book, primarily so the borrow
// endpoint can respond with the loan it just opened or extended.
package getactiveloan

import (
	"github.com/google/uuid"
)

const (
	queryType = "GetActiveLoan"
)

// Query represents the intent to read a book's active borrow record.
type Query struct {
	BookID uuid.UUID
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query for the given book.
func BuildQuery(bookID uuid.UUID) Query {
	return Query{BookID: bookID}
}
