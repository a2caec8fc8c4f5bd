package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryDirectory is an in-process Directory backed by a map.
// It is safe for concurrent use and intended for tests and single-node setups.
type MemoryDirectory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]string
}

// NewMemoryDirectory creates an empty MemoryDirectory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		entries: make(map[uuid.UUID]string),
	}
}

// DisplayName returns the user's display name or ErrUserNotFound.
func (d *MemoryDirectory) DisplayName(_ context.Context, userID uuid.UUID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.entries[userID]
	if !ok {
		return "", ErrUserNotFound
	}

	return name, nil
}

// Upsert inserts or refreshes a directory entry.
func (d *MemoryDirectory) Upsert(_ context.Context, userID uuid.UUID, displayName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[userID] = displayName

	return nil
}

var _ Directory = (*MemoryDirectory)(nil)
