package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when the directory has no entry for the user.
var ErrUserNotFound = errors.New("user not found")

// Directory resolves borrower display names and accepts seed data.
type Directory interface {
	// DisplayName returns the user's display name or ErrUserNotFound.
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)

	// Upsert inserts or refreshes a directory entry.
	Upsert(ctx context.Context, userID uuid.UUID, displayName string) error
}
