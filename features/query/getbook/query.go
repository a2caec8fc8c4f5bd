package getbook

import (
	"github.com/google/uuid"
)

const (
	queryType = "GetBook"
)

// Query represents the intent to read a single book projection.
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
