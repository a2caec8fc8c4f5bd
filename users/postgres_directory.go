package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresDirectory is a Directory backed by a Postgres table, accessed via sqlx.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    user_id      UUID PRIMARY KEY,
//	    display_name TEXT NOT NULL
//	);
type PostgresDirectory struct {
	db    *sqlx.DB
	table string
}

// ErrNilDatabaseConnection is returned when a nil sqlx.DB is supplied.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

const defaultUsersTableName = "users"

// NewPostgresDirectory creates a Directory on top of the given sqlx connection pool.
func NewPostgresDirectory(db *sqlx.DB) (*PostgresDirectory, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return &PostgresDirectory{db: db, table: defaultUsersTableName}, nil
}

// DisplayName returns the user's display name or ErrUserNotFound.
func (d *PostgresDirectory) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	query := `SELECT display_name FROM ` + d.table + ` WHERE user_id = $1`

	var name string
	if err := d.db.GetContext(ctx, &name, query, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}

		return "", err
	}

	return name, nil
}

// Upsert inserts or refreshes a directory entry.
func (d *PostgresDirectory) Upsert(ctx context.Context, userID uuid.UUID, displayName string) error {
	query := `INSERT INTO ` + d.table + ` (user_id, display_name) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET display_name = EXCLUDED.display_name`

	_, err := d.db.ExecContext(ctx, query, userID.String(), displayName)

	return err
}

var _ Directory = (*PostgresDirectory)(nil)
