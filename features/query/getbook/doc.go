// Package getbook implements the Get Book read slice.
//
// It projects a single book from the book store and the borrow ledger into
// a bookview.Book. The borrower sub-object is present iff the book has an
// active borrow record; the display name is looked up in the user directory
// and degrades to an empty string when the directory has no entry.
package getbook
