package registerbook

import (
	"context"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/shell"
)

// CatalogStore defines the interface needed by the CommandHandler for catalog store operations.
type CatalogStore interface {
	InsertBook(ctx context.Context, row catalogstore.BookRow) error
}

// CommandHandler stores the new book row built from the command.
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

// Handle inserts the new book row. The freshly generated ID cannot collide in
// practice, the retry loop is kept for workflow symmetry with the other handlers.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.store.InsertBook(retryCtx, bookRowFrom(command))
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// bookRowFrom maps the command into its storage representation.
func bookRowFrom(command Command) catalogstore.BookRow {
	return catalogstore.BookRow{
		ID:            command.BookID,
		Title:         string(command.Title),
		Authors:       command.Authors,
		Code:          command.Metadata.Code,
		Publisher:     command.Metadata.Publisher,
		PublishedDate: command.Metadata.PublishedDate,
		ThumbnailURL:  command.Metadata.ThumbnailURL,
		CreatedAt:     command.OccurredAt,
		UpdatedAt:     command.OccurredAt,
		Version:       1,
	}
}
