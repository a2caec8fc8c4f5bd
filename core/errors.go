package core

import "errors"

var (
	// ErrBookNotFound is returned when the targeted book does not exist in the catalog.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookAlreadyBorrowed is returned when a borrow is attempted on a book
	// that is currently held by a different borrower.
	ErrBookAlreadyBorrowed = errors.New("book is already borrowed by another user")

	// ErrBookNotBorrowed is returned when a return is attempted on a book
	// without an active borrow record.
	ErrBookNotBorrowed = errors.New("book is not currently borrowed")

	// ErrNotBorrower is returned when someone other than the active borrower
	// attempts to return a book.
	ErrNotBorrower = errors.New("only the borrower can return this book")

	// ErrBookBorrowed is returned when a removal is attempted while the book
	// has an active borrow record.
	ErrBookBorrowed = errors.New("book is currently borrowed")
)
