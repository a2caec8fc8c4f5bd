package updatebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/catalogstore/memoryengine"
	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/command/updatebook"
)

func setupBook(t *testing.T, engine *memoryengine.Engine) uuid.UUID {
	t.Helper()

	bookID := uuid.New()
	now := time.Now()

	require.NoError(t, engine.InsertBook(context.Background(), catalogstore.BookRow{
		ID:        bookID,
		Title:     "Original Title",
		Authors:   []string{"Original Author"},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}))

	return bookID
}

func Test_CommandHandler_Handle_PatchesBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := setupBook(t, engine)

	handler := updatebook.NewCommandHandler(engine)

	newTitle := core.Title("Patched Title")

	// act
	result, err := handler.Handle(ctx, updatebook.BuildCommand(bookID, updatebook.Patch{Title: &newTitle}, time.Now()))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Idempotent)

	row, err := engine.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Patched Title", row.Title)
	assert.Equal(t, []string{"Original Author"}, row.Authors)
	assert.Equal(t, uint64(2), row.Version)
}

func Test_CommandHandler_Handle_EmptyPatchIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := setupBook(t, engine)

	handler := updatebook.NewCommandHandler(engine)

	// act
	result, err := handler.Handle(ctx, updatebook.BuildCommand(bookID, updatebook.Patch{}, time.Now()))

	// assert - no error, no state change, flagged as idempotent
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)

	row, err := engine.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Original Title", row.Title)
	assert.Equal(t, uint64(1), row.Version, "version must not move on a no-op")
}

func Test_CommandHandler_Handle_RejectsUnknownBook(t *testing.T) {
	handler := updatebook.NewCommandHandler(memoryengine.NewEngine())

	newTitle := core.Title("Patched Title")

	_, err := handler.Handle(context.Background(), updatebook.BuildCommand(uuid.New(), updatebook.Patch{Title: &newTitle}, time.Now()))

	assert.ErrorIs(t, err, core.ErrBookNotFound)
}
