// Package httpserver exposes the lending use cases as an HTTP API.
//
// Routes (all behind bearer authentication):
//
//	POST   /books                  register a book
//	GET    /books                  list/search the catalog
//	GET    /books/{bookId}         read one book projection
//	PATCH  /books/{bookId}         partially update a book
//	DELETE /books/{bookId}         remove a book (reason required)
//	POST   /books/{bookId}/borrow  borrow or extend
//	POST   /books/{bookId}/return  return
//
// The handlers are thin: they decode and validate the request, build a
// command or query, delegate to the feature slice, and map domain errors
// to HTTP status codes with machine-readable error codes. Mutations respond
// with a fresh read through the corresponding query slice.
package httpserver
