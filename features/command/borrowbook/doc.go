// Package borrowbook implements the Borrow Book use case.
//
// A borrower claims an available book for a lending period of due-days
// (defaulting to seven). Borrowing a book one already holds extends the
// due date from the previous due date, not from now. Borrowing a book
// held by someone else is rejected.
//
// The package follows the Read-Decide-Write pattern with proper separation
// between infrastructure concerns (CommandHandler) and pure business logic
// (Decide function). Write conflicts under concurrency surface as
// catalogstore.ErrConcurrencyConflict and are retried with a fresh state
// snapshot; domain rejections are terminal.
package borrowbook
