// Package testdoubles provides spy implementations of the observability
// interfaces (metrics, tracing, contextual logging) for use in tests.
// The spies capture all calls so that tests can assert which metrics,
// spans, and log records instrumented code produced.
package testdoubles
