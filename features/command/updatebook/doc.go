// Package updatebook implements the Update Book use case.
//
// The update is a partial patch: only the fields present in the command are
// replaced, everything else is preserved. An empty patch is a no-op and is
// reported as an idempotent outcome. The write is guarded by a compare-and-set
// on the row version, so concurrent updates never silently overwrite each other.
package updatebook
