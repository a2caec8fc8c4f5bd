// Package observable provides wrapper components for instrumenting command and query handlers
// with comprehensive observability (metrics, tracing, logging) while keeping business logic pure.
//
// # Core Principle: External Wrapping
//
// The observable wrappers are applied externally at bootstrap/wiring time, not hidden
// inside factory functions. This makes the observability composition explicit and transparent.
//
// # Command Handler Usage
//
// Basic pattern for wrapping a command handler with observability:
//
//	// 1. Create pure business logic handler
//	coreHandler := borrowbook.NewCommandHandler(store)
//
//	// 2. Wrap with observability (external, explicit)
//	observableHandler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[borrowbook.Command](metricsCollector),
//		observable.WithCommandTracing[borrowbook.Command](tracingCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command](contextualLogger),
//	)
//
//	// 3. Use wrapped handler in application
//	result, err := observableHandler.Handle(ctx, command)
//
// # Selective Observability
//
// You can choose which observability concerns to apply; every option is optional
// and a wrapper with no options is a plain pass-through.
//
// # Pure Business Logic Testing
//
// For unit tests focused on business logic, use handlers without observability:
//
//	handler := borrowbook.NewCommandHandler(store)
//	result, err := handler.Handle(ctx, command)
package observable
