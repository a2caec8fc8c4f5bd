package removebook_test

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
	"github.com/bibliofleet/lending-go/features/command/borrowbook"
	"github.com/bibliofleet/lending-go/features/command/removebook"
	"github.com/bibliofleet/lending-go/features/command/returnbook"
)

func givenBook(t *testing.T, engine *memoryengine.Engine) uuid.UUID {
	t.Helper()

	bookID := uuid.New()
	now := time.Now()

	require.NoError(t, engine.InsertBook(context.Background(), catalogstore.BookRow{
		ID:        bookID,
		Title:     "Some Book",
		Authors:   []string{"Some Author"},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}))

	return bookID
}

func Test_CommandHandler_Handle_RemovesIdleBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := givenBook(t, engine)

	handler := removebook.NewCommandHandler(engine)

	// act
	_, err := handler.Handle(ctx, removebook.BuildCommand(bookID, core.RemovalReasonDisposal, "shelf damage", time.Now()))

	// assert
	assert.NoError(t, err)

	_, err = engine.GetBook(ctx, bookID)
	assert.ErrorIs(t, err, catalogstore.ErrBookNotFound)
}

func Test_CommandHandler_Handle_RecordsReasonAndMemo(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := givenBook(t, engine)
	occurredAt := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

	handler := removebook.NewCommandHandler(engine)

	// act
	_, err := handler.Handle(ctx, removebook.BuildCommand(bookID, core.RemovalReasonLost, "not returned after two reminders", occurredAt))
	require.NoError(t, err)

	// assert - the removal audit carries what the command said
	recorded, err := engine.RemovalRecord(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, string(core.RemovalReasonLost), recorded.Reason)
	require.NotNil(t, recorded.Memo)
	assert.Equal(t, "not returned after two reminders", *recorded.Memo)
	assert.Equal(t, occurredAt, recorded.RemovedAt)
}

func Test_CommandHandler_Handle_RecordsRemovalWithoutMemo(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := givenBook(t, engine)

	handler := removebook.NewCommandHandler(engine)

	// act
	_, err := handler.Handle(ctx, removebook.BuildCommand(bookID, core.RemovalReasonTransfer, "", time.Now()))
	require.NoError(t, err)

	// assert - an empty memo is stored as absent, not as an empty string
	recorded, err := engine.RemovalRecord(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, string(core.RemovalReasonTransfer), recorded.Reason)
	assert.Nil(t, recorded.Memo)
}

func Test_CommandHandler_Handle_RejectsRemovalWhileBorrowed(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := givenBook(t, engine)
	borrowerID := uuid.New()

	borrowHandler := borrowbook.NewCommandHandler(engine)
	_, err := borrowHandler.Handle(ctx, borrowbook.BuildCommand(bookID, borrowerID, core.DueDays(7), time.Now()))
	require.NoError(t, err)

	handler := removebook.NewCommandHandler(engine)

	// act
	_, err = handler.Handle(ctx, removebook.BuildCommand(bookID, core.RemovalReasonTransfer, "", time.Now()))

	// assert - removal blocked until the book comes back
	assert.ErrorIs(t, err, core.ErrBookBorrowed)

	returnHandler := returnbook.NewCommandHandler(engine)
	_, err = returnHandler.Handle(ctx, returnbook.BuildCommand(bookID, borrowerID, time.Now()))
	require.NoError(t, err)

	_, err = handler.Handle(ctx, removebook.BuildCommand(bookID, core.RemovalReasonTransfer, "", time.Now()))
	assert.NoError(t, err)
}

func Test_CommandHandler_Handle_RejectsRemovalOfUnknownBook(t *testing.T) {
	handler := removebook.NewCommandHandler(memoryengine.NewEngine())

	_, err := handler.Handle(context.Background(), removebook.BuildCommand(uuid.New(), core.RemovalReasonLost, "", time.Now()))

	assert.ErrorIs(t, err, core.ErrBookNotFound)
}

func Test_CommandHandler_Handle_HistorySurvivesRemoval(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	bookID := givenBook(t, engine)
	borrowerID := uuid.New()

	borrowHandler := borrowbook.NewCommandHandler(engine)
	_, err := borrowHandler.Handle(ctx, borrowbook.BuildCommand(bookID, borrowerID, core.DueDays(7), time.Now()))
	require.NoError(t, err)

	returnHandler := returnbook.NewCommandHandler(engine)
	_, err = returnHandler.Handle(ctx, returnbook.BuildCommand(bookID, borrowerID, time.Now()))
	require.NoError(t, err)

	// act
	handler := removebook.NewCommandHandler(engine)
	_, err = handler.Handle(ctx, removebook.BuildCommand(bookID, core.RemovalReasonDisposal, "", time.Now()))
	require.NoError(t, err)

	// assert - the ledger keeps the closed record for audit
	history, err := engine.BorrowHistory(ctx, bookID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
