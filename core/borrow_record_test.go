package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibliofleet/lending-go/core"
)

func Test_BuildBorrowRecord_ComputesDueDateFromBorrowInstant(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	borrowedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// act
	record := core.BuildBorrowRecord(bookID, borrowerID, core.DueDays(7), borrowedAt)

	// assert
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, bookID, record.BookID)
	assert.Equal(t, borrowerID, record.BorrowerID)
	assert.Equal(t, borrowedAt, record.BorrowedAt)
	assert.Equal(t, borrowedAt.AddDate(0, 0, 7), record.DueAt)
	assert.True(t, record.IsActive())
}

func Test_Extended_CountsFromPreviousDueDate(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := core.BuildBorrowRecord(uuid.New(), uuid.New(), core.DueDays(7), borrowedAt)

	// act - extend twice, the extensions must compound
	extended := record.Extended(core.DueDays(7)).Extended(core.DueDays(3))

	// assert
	assert.Equal(t, borrowedAt.AddDate(0, 0, 17), extended.DueAt)
	assert.Equal(t, record.BorrowedAt, extended.BorrowedAt)
	assert.Equal(t, record.ID, extended.ID)
	assert.True(t, extended.IsActive())
}

func Test_Closed_SetsReturnedAtAndDeactivates(t *testing.T) {
	// arrange
	record := core.BuildBorrowRecord(uuid.New(), uuid.New(), core.DueDays(7), time.Now())
	returnedAt := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	// act
	closed := record.Closed(returnedAt)

	// assert
	assert.False(t, closed.IsActive())
	assert.NotNil(t, closed.ReturnedAt)
	assert.Equal(t, returnedAt, *closed.ReturnedAt)
	assert.True(t, record.IsActive(), "original record must be unchanged")
}

func Test_ToOccurredAt_NormalizesToUTCMicroseconds(t *testing.T) {
	zone := time.FixedZone("CEST", 2*60*60)
	instant := time.Date(2025, 6, 1, 14, 0, 0, 123456789, zone)

	occurredAt := core.ToOccurredAt(instant)

	assert.Equal(t, time.UTC, occurredAt.Location())
	assert.Equal(t, 123456000, occurredAt.Nanosecond())
	assert.Equal(t, 12, occurredAt.Hour())
}
