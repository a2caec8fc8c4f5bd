package getbook

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/query/bookview"
	"github.com/bibliofleet/lending-go/users"
)

// CatalogStore defines the interface needed by the QueryHandler for catalog store operations.
type CatalogStore interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (catalogstore.BookRow, error)
	ActiveBorrow(ctx context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error)
}

// QueryHandler reads a single book projection.
// It contains pure read logic; external wrappers handle all observability concerns.
type QueryHandler struct {
	store     CatalogStore
	directory users.Directory
}

// NewQueryHandler creates a new QueryHandler with the provided dependencies.
func NewQueryHandler(store CatalogStore, directory users.Directory) QueryHandler {
	return QueryHandler{
		store:     store,
		directory: directory,
	}
}

// Handle executes the read workflow: book row -> active borrow -> borrower name -> projection.
// It fails with core.ErrBookNotFound when the book does not exist.
func (h QueryHandler) Handle(ctx context.Context, query Query) (bookview.Book, error) {
	row, err := h.store.GetBook(ctx, query.BookID)
	if err != nil {
		if errors.Is(err, catalogstore.ErrBookNotFound) {
			return bookview.Book{}, core.ErrBookNotFound
		}

		return bookview.Book{}, err
	}

	active, err := h.store.ActiveBorrow(ctx, query.BookID)
	if err != nil {
		if errors.Is(err, catalogstore.ErrNoActiveBorrow) {
			return bookview.FromRows(row, nil, ""), nil
		}

		return bookview.Book{}, err
	}

	name, err := h.directory.DisplayName(ctx, active.BorrowerID)
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return bookview.Book{}, err
	}

	return bookview.FromRows(row, &active, name), nil
}
