package listbooks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/features/query/bookview"
	"github.com/bibliofleet/lending-go/users"
)

// CatalogStore defines the interface needed by the QueryHandler for catalog store operations.
type CatalogStore interface {
	ListBooks(ctx context.Context, selection catalogstore.Selection) ([]catalogstore.BookRow, int64, error)
	ActiveBorrows(ctx context.Context, bookIDs []uuid.UUID) ([]catalogstore.BorrowRow, error)
}

// Result is one page of catalog projections plus the total count of matching
// books, independent of the page window.
type Result struct {
	Total int64
	Items []bookview.Book
}

// QueryHandler reads one page of the catalog.
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

// Handle executes the read workflow: page of book rows -> active borrows for
// the page -> borrower names -> projections.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	selection := catalogstore.Selection{
		Keyword: query.Keyword,
		Limit:   query.Limit,
		Offset:  query.Offset,
	}

	rows, total, err := h.store.ListBooks(ctx, selection)
	if err != nil {
		return Result{}, err
	}

	activeByBook, err := h.activeBorrowsByBook(ctx, rows)
	if err != nil {
		return Result{}, err
	}

	names, err := h.borrowerNames(ctx, activeByBook)
	if err != nil {
		return Result{}, err
	}

	items := make([]bookview.Book, 0, len(rows))
	for _, row := range rows {
		active := activeByBook[row.ID]
		if active == nil {
			items = append(items, bookview.FromRows(row, nil, ""))
			continue
		}

		items = append(items, bookview.FromRows(row, active, names[active.BorrowerID]))
	}

	return Result{Total: total, Items: items}, nil
}

// activeBorrowsByBook fetches the active borrow records for the page in one call.
func (h QueryHandler) activeBorrowsByBook(
	ctx context.Context,
	rows []catalogstore.BookRow,
) (map[uuid.UUID]*catalogstore.BorrowRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	bookIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		bookIDs = append(bookIDs, row.ID)
	}

	active, err := h.store.ActiveBorrows(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	byBook := make(map[uuid.UUID]*catalogstore.BorrowRow, len(active))
	for i := range active {
		byBook[active[i].BookID] = &active[i]
	}

	return byBook, nil
}

// borrowerNames resolves the display names of the distinct borrowers on the page.
// A missing directory entry degrades to an empty name instead of failing the page.
func (h QueryHandler) borrowerNames(
	ctx context.Context,
	activeByBook map[uuid.UUID]*catalogstore.BorrowRow,
) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(activeByBook))

	for _, active := range activeByBook {
		if _, done := names[active.BorrowerID]; done {
			continue
		}

		name, err := h.directory.DisplayName(ctx, active.BorrowerID)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				names[active.BorrowerID] = ""
				continue
			}

			return nil, err
		}

		names[active.BorrowerID] = name
	}

	return names, nil
}
