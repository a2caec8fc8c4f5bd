package shell

import (
	"context"
)

// Command represents the contract for all command types in the application.
// Each command encapsulates the intent and parameters needed to execute a specific business operation.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types in the application.
// Each query encapsulates the intent and parameters needed to retrieve a specific view.
// The QueryType method enables polymorphic handling and observability instrumentation.
type Query interface {
	QueryType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow: reading state, deciding, and writing conditionally.
// The generic parameter C ensures type safety between commands and their corresponding handlers.
// Implementations should focus purely on business logic without observability concerns.
// This interface is designed to be wrapped with observability decorators for complete functionality.
// Handlers return HandlerResult containing business outcomes (idempotency) and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CoreQueryHandler defines the contract for components that process queries with pure business logic.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
// Implementations should focus purely on business logic without observability concerns.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
