// Package core contains the pure domain model of the lending system:
// validated value types, the borrow record, and the per-book lending state
// that the feature packages' Decide functions operate on.
//
// Nothing in this package performs I/O. All functions are deterministic,
// time is always passed in explicitly.
package core
