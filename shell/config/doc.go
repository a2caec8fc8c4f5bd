// Package config provides configuration for the lending service:
// environment-driven server settings and database connection factories
// for the supported PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB).
//
// This package is part of the shell (infrastructure) layer.
package config
