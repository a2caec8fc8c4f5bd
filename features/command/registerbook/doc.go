// Package registerbook implements the Register Book use case.
//
// A new book enters the catalog with a validated title and authors list plus
// optional pass-through metadata (catalog code, publisher, published date,
// thumbnail reference). The book ID is generated when the command is built,
// so the caller knows the identity of the row it created.
//
// There is no Decide function here: registration has no prior state to decide
// against, the input validation happens when the value objects are parsed.
package registerbook
