package memoryengine

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
)

// Engine is an in-process implementation of catalogstore.Store.
//
// Every book lives in its own entry with its own mutex, so operations on
// different books never contend. A removed book leaves a tombstoned entry
// behind to keep its borrow history available for audit.
type Engine struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*bookEntry
}

type bookEntry struct {
	mu      sync.Mutex
	removed bool
	removal *catalogstore.RemovalRow
	row     catalogstore.BookRow
	active  *catalogstore.BorrowRow
	history []catalogstore.BorrowRow // closed records, oldest first
}

// NewEngine creates an empty in-memory store.
func NewEngine() *Engine {
	return &Engine{
		entries: make(map[uuid.UUID]*bookEntry),
	}
}

func (e *Engine) entry(bookID uuid.UUID) (*bookEntry, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entry, ok := e.entries[bookID]

	return entry, ok
}

// InsertBook stores a new book row. A tombstoned ID stays taken, its entry
// still holds the borrow history and removal record.
func (e *Engine) InsertBook(_ context.Context, row catalogstore.BookRow) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.entries[row.ID]; ok {
		return catalogstore.ErrDuplicateBook
	}

	e.entries[row.ID] = &bookEntry{row: cloneBookRow(row)}

	return nil
}

// GetBook returns the book row or catalogstore.ErrBookNotFound.
func (e *Engine) GetBook(_ context.Context, bookID uuid.UUID) (catalogstore.BookRow, error) {
	entry, ok := e.entry(bookID)
	if !ok {
		return catalogstore.BookRow{}, catalogstore.ErrBookNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return catalogstore.BookRow{}, catalogstore.ErrBookNotFound
	}

	return cloneBookRow(entry.row), nil
}

// ListBooks returns one stable-ordered page plus the window-independent total.
func (e *Engine) ListBooks(_ context.Context, selection catalogstore.Selection) ([]catalogstore.BookRow, int64, error) {
	e.mu.RLock()
	all := make([]*bookEntry, 0, len(e.entries))
	for _, entry := range e.entries {
		all = append(all, entry)
	}
	e.mu.RUnlock()

	matching := make([]catalogstore.BookRow, 0, len(all))

	for _, entry := range all {
		entry.mu.Lock()
		removed := entry.removed
		row := cloneBookRow(entry.row)
		entry.mu.Unlock()

		if removed {
			continue
		}

		if selection.Keyword != nil && !containsFold(row.Title, *selection.Keyword) {
			continue
		}

		matching = append(matching, row)
	}

	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].CreatedAt.Equal(matching[j].CreatedAt) {
			return matching[i].CreatedAt.Before(matching[j].CreatedAt)
		}
		return matching[i].ID.String() < matching[j].ID.String()
	})

	total := int64(len(matching))

	if selection.Offset >= len(matching) {
		return []catalogstore.BookRow{}, total, nil
	}

	matching = matching[selection.Offset:]
	if selection.Limit > 0 && selection.Limit < len(matching) {
		matching = matching[:selection.Limit]
	}

	return matching, total, nil
}

// UpdateBook replaces the row's mutable fields with a compare-and-set on the version.
func (e *Engine) UpdateBook(_ context.Context, row catalogstore.BookRow, expectedVersion uint64) error {
	entry, ok := e.entry(row.ID)
	if !ok {
		return catalogstore.ErrConcurrencyConflict
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed || entry.row.Version != expectedVersion {
		return catalogstore.ErrConcurrencyConflict
	}

	updated := cloneBookRow(row)
	updated.CreatedAt = entry.row.CreatedAt
	updated.Version = expectedVersion + 1
	entry.row = updated

	return nil
}

// RemoveBook tombstones the book and keeps the removal audit record,
// guarded by "no active borrow exists".
func (e *Engine) RemoveBook(_ context.Context, removal catalogstore.RemovalRow) error {
	entry, ok := e.entry(removal.BookID)
	if !ok {
		return catalogstore.ErrConcurrencyConflict
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed || entry.active != nil {
		return catalogstore.ErrConcurrencyConflict
	}

	recorded := removal
	entry.removed = true
	entry.removal = &recorded

	return nil
}

// ActiveBorrow returns the book's active borrow record, if any.
func (e *Engine) ActiveBorrow(_ context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error) {
	entry, ok := e.entry(bookID)
	if !ok {
		return catalogstore.BorrowRow{}, catalogstore.ErrNoActiveBorrow
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.active == nil {
		return catalogstore.BorrowRow{}, catalogstore.ErrNoActiveBorrow
	}

	return *entry.active, nil
}

// ActiveBorrows returns the active borrow records for the given books.
func (e *Engine) ActiveBorrows(ctx context.Context, bookIDs []uuid.UUID) ([]catalogstore.BorrowRow, error) {
	rows := make([]catalogstore.BorrowRow, 0, len(bookIDs))

	for _, bookID := range bookIDs {
		row, err := e.ActiveBorrow(ctx, bookID)
		if err != nil {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// OpenBorrow appends a fresh active record, guarded by
// "the book exists and has no active borrow".
func (e *Engine) OpenBorrow(_ context.Context, row catalogstore.BorrowRow) error {
	entry, ok := e.entry(row.BookID)
	if !ok {
		return catalogstore.ErrConcurrencyConflict
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed || entry.active != nil {
		return catalogstore.ErrConcurrencyConflict
	}

	opened := row
	entry.active = &opened

	return nil
}

// ExtendBorrow moves the active record's due date, guarded by "the record is still active".
func (e *Engine) ExtendBorrow(_ context.Context, recordID uuid.UUID, dueAt time.Time) error {
	entry := e.entryForActiveRecord(recordID)
	if entry == nil {
		return catalogstore.ErrConcurrencyConflict
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.active == nil || entry.active.ID != recordID {
		return catalogstore.ErrConcurrencyConflict
	}

	entry.active.DueAt = dueAt

	return nil
}

// CloseBorrow sets the active record's returned-at, guarded by "the record is still active".
func (e *Engine) CloseBorrow(_ context.Context, recordID uuid.UUID, returnedAt time.Time) error {
	entry := e.entryForActiveRecord(recordID)
	if entry == nil {
		return catalogstore.ErrConcurrencyConflict
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.active == nil || entry.active.ID != recordID {
		return catalogstore.ErrConcurrencyConflict
	}

	closed := *entry.active
	closed.ReturnedAt = &returnedAt
	entry.history = append(entry.history, closed)
	entry.active = nil

	return nil
}

// BorrowHistory returns all closed borrow records of a book, oldest first.
// History survives book removal.
func (e *Engine) BorrowHistory(_ context.Context, bookID uuid.UUID) ([]catalogstore.BorrowRow, error) {
	entry, ok := e.entry(bookID)
	if !ok {
		return nil, nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	history := make([]catalogstore.BorrowRow, len(entry.history))
	copy(history, entry.history)

	return history, nil
}

// RemovalRecord returns the audit record of a removed book, or
// catalogstore.ErrBookNotFound while the book has not been removed.
func (e *Engine) RemovalRecord(_ context.Context, bookID uuid.UUID) (catalogstore.RemovalRow, error) {
	entry, ok := e.entry(bookID)
	if !ok {
		return catalogstore.RemovalRow{}, catalogstore.ErrBookNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removal == nil {
		return catalogstore.RemovalRow{}, catalogstore.ErrBookNotFound
	}

	return *entry.removal, nil
}

func (e *Engine) entryForActiveRecord(recordID uuid.UUID) *bookEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, entry := range e.entries {
		entry.mu.Lock()
		match := entry.active != nil && entry.active.ID == recordID
		entry.mu.Unlock()

		if match {
			return entry
		}
	}

	return nil
}

func cloneBookRow(row catalogstore.BookRow) catalogstore.BookRow {
	cloned := row
	cloned.Authors = append([]string(nil), row.Authors...)

	return cloned
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var _ catalogstore.Store = (*Engine)(nil)
