// Package returnbook implements the Return Book use case.
//
// Only the borrower holding the active record may return the book; anyone
// else is rejected with core.ErrNotBorrower. Returning a book without an
// active record is rejected with core.ErrBookNotBorrowed. The record is
// closed, never deleted, so the lending history stays intact.
package returnbook
