// Package bookview holds the catalog projection shared by the read slices.
//
// Status is derived, never stored: a book is Borrowed iff an active borrow
// record exists for it, and only then does the projection carry a Borrower.
package bookview

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
)

const (
	// StatusAvailable marks a book without an active borrow record.
	StatusAvailable = "available"

	// StatusBorrowed marks a book with an active borrow record.
	StatusBorrowed = "borrowed"
)

// Borrower describes who currently holds a book.
type Borrower struct {
	ID         uuid.UUID
	Name       string
	BorrowedAt time.Time
	DueAt      time.Time
}

// Book is the full catalog projection of a single book.
// Borrower is nil exactly when Status is StatusAvailable.
type Book struct {
	ID            uuid.UUID
	Title         string
	Authors       []string
	Code          *string
	Publisher     *string
	PublishedDate *string
	ThumbnailURL  *string
	Status        string
	Borrower      *Borrower
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FromRows projects a stored book row and its active borrow record (nil when
// the book is available) into the view. borrowerName may be empty when the
// user directory has no entry for the holder.
func FromRows(row catalogstore.BookRow, active *catalogstore.BorrowRow, borrowerName string) Book {
	book := Book{
		ID:            row.ID,
		Title:         row.Title,
		Authors:       row.Authors,
		Code:          row.Code,
		Publisher:     row.Publisher,
		PublishedDate: row.PublishedDate,
		ThumbnailURL:  row.ThumbnailURL,
		Status:        StatusAvailable,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	if active != nil {
		book.Status = StatusBorrowed
		book.Borrower = &Borrower{
			ID:         active.BorrowerID,
			Name:       borrowerName,
			BorrowedAt: active.BorrowedAt,
			DueAt:      active.DueAt,
		}
	}

	return book
}
