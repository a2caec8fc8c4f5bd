package updatebook

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/shell"
)

// CatalogStore defines the interface needed by the CommandHandler for catalog store operations.
type CatalogStore interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (catalogstore.BookRow, error)
	UpdateBook(ctx context.Context, row catalogstore.BookRow, expectedVersion uint64) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read row -> Decide -> Compare-and-set write.
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
// An empty patch is an idempotent outcome, not an error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	row, err := h.store.GetBook(ctx, command.BookID)
	if err != nil {
		if errors.Is(err, catalogstore.ErrBookNotFound) {
			return false, core.ErrBookNotFound
		}

		return false, err
	}

	result := Decide(row, command)

	if result.IsNoop() {
		return true, nil
	}

	return false, h.store.UpdateBook(ctx, result.Row(), row.Version)
}
