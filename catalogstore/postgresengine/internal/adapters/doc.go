// Package adapters wraps the supported database access technologies
// (pgx pool, database/sql, sqlx) behind one minimal interface so the
// store engine can build SQL once and execute it against any of them.
package adapters
