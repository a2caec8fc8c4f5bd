package getactiveloan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
)

// CatalogStore defines the interface needed by the QueryHandler for catalog store operations.
type CatalogStore interface {
	ActiveBorrow(ctx context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error)
}

// Loan is the projection of an active borrow record.
type Loan struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	BorrowedAt time.Time
	DueAt      time.Time
}

// QueryHandler reads a book's active borrow record.
// It contains pure read logic; external wrappers handle all observability concerns.
type QueryHandler struct {
	store CatalogStore
}

// NewQueryHandler creates a new QueryHandler with the provided dependency.
func NewQueryHandler(store CatalogStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the book's active loan or core.ErrBookNotBorrowed.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Loan, error) {
	row, err := h.store.ActiveBorrow(ctx, query.BookID)
	if err != nil {
		if errors.Is(err, catalogstore.ErrNoActiveBorrow) {
			return Loan{}, core.ErrBookNotBorrowed
		}

		return Loan{}, err
	}

	return Loan{
		ID:         row.ID,
		BookID:     row.BookID,
		BorrowerID: row.BorrowerID,
		BorrowedAt: row.BorrowedAt,
		DueAt:      row.DueAt,
	}, nil
}
