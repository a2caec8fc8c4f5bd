package borrowbook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/shell"
)

// CatalogStore defines the interface needed by the CommandHandler for catalog store operations.
type CatalogStore interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (catalogstore.BookRow, error)
	ActiveBorrow(ctx context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error)
	OpenBorrow(ctx context.Context, row catalogstore.BorrowRow) error
	ExtendBorrow(ctx context.Context, recordID uuid.UUID, dueAt time.Time) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read state -> Decide -> Conditional write.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        CatalogStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store CatalogStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// It delegates business logic to executeCommand and handles retry with exponential backoff.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
//
// Resilience: Implements exponential backoff retry logic for concurrency conflicts.
// A conflicting write triggers a fresh state snapshot and a new decision, so a lost
// race against another borrower resolves into core.ErrBookAlreadyBorrowed instead of
// a spurious conflict error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	// Read phase
	state, err := shell.LoadLendingState(ctx, h.store, command.BookID)
	if err != nil {
		return err
	}

	// Business logic phase - delegate to pure core function
	result := Decide(state, command)

	// Write phase - conditional, guarded by the store
	switch {
	case result.IsRejected():
		return result.Err()

	case result.IsExtension():
		record := result.Record()
		return h.store.ExtendBorrow(ctx, record.ID, record.DueAt)

	default:
		return h.store.OpenBorrow(ctx, shell.BorrowRowFromRecord(result.Record()))
	}
}
