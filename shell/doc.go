// Package shell contains the imperative shell shared by all feature slices.
//
// It provides the plumbing that the pure core deliberately knows nothing
// about: retry with exponential backoff for optimistic concurrency
// conflicts, handler result metadata, and observability helpers (metrics,
// tracing, logging) used by the observable wrappers.
package shell
