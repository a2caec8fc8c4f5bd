package removebook

import (
	"context"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/shell"
)

// CatalogStore defines the interface needed by the CommandHandler for catalog store operations.
type CatalogStore interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (catalogstore.BookRow, error)
	ActiveBorrow(ctx context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error)
	RemoveBook(ctx context.Context, removal catalogstore.RemovalRow) error
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
// A removal that loses the race against a concurrent borrow fails its store guard,
// retries with a fresh snapshot and resolves into core.ErrBookBorrowed.
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
	state, err := shell.LoadLendingState(ctx, h.store, command.BookID)
	if err != nil {
		return err
	}

	result := Decide(state, command)

	if result.IsRejected() {
		return result.Err()
	}

	removal := catalogstore.RemovalRow{
		BookID:    command.BookID,
		Reason:    string(command.Reason),
		RemovedAt: command.OccurredAt,
	}
	if command.Memo != "" {
		memo := command.Memo
		removal.Memo = &memo
	}

	return h.store.RemoveBook(ctx, removal)
}
