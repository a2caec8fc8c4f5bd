// Package removebook implements the Remove Book use case.
//
// A book is removed from the catalog for an enumerated reason (transfer,
// disposal, lost, other) with an optional free-text memo. Removal is refused
// while the book has an active borrow record. Historical borrow records are
// retained for audit regardless of removal.
package removebook
