// Package listbooks implements the List Books read slice.
//
// It returns one stable page of catalog projections plus the total count of
// matching books, independent of the page window. The keyword filter matches
// title substrings case-insensitively. Ordering is by creation time with the
// book ID as tie-breaker, so offset paging is consistent between calls.
package listbooks
