// Package users provides a read-mostly directory of borrower display names.
//
// User registration and identity issuance live outside this service; the
// lending domain only references users by ID. The directory exists so that
// catalog projections can show who holds a book. Entries are seeded or
// refreshed through Upsert, typically from the identity provider's feed.
package users
