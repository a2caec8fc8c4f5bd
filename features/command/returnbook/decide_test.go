package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/command/returnbook"
)

func Test_Decide_Close_WhenBorrowerReturnsOwnLoan(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()
	borrowedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	returnedAt := borrowedAt.Add(48 * time.Hour)

	activeRecord := core.BuildBorrowRecord(bookID, borrowerID, core.DueDays(7), borrowedAt)
	state := core.LendingState{BookExists: true, ActiveRecord: &activeRecord}

	command := returnbook.BuildCommand(bookID, borrowerID, returnedAt)

	// act
	decision := returnbook.Decide(state, command)

	// assert
	assert.True(t, decision.IsClose())

	record := decision.Record()
	assert.Equal(t, activeRecord.ID, record.ID)
	assert.False(t, record.IsActive())
	assert.Equal(t, returnedAt, *record.ReturnedAt)
}

func Test_Decide_Rejected_WhenBookDoesNotExist(t *testing.T) {
	command := returnbook.BuildCommand(uuid.New(), uuid.New(), time.Now())

	decision := returnbook.Decide(core.LendingState{}, command)

	assert.True(t, decision.IsRejected())
	assert.ErrorIs(t, decision.Err(), core.ErrBookNotFound)
}

func Test_Decide_Rejected_WhenBookNotBorrowed(t *testing.T) {
	command := returnbook.BuildCommand(uuid.New(), uuid.New(), time.Now())

	decision := returnbook.Decide(core.LendingState{BookExists: true}, command)

	assert.True(t, decision.IsRejected())
	assert.ErrorIs(t, decision.Err(), core.ErrBookNotBorrowed)
}

func Test_Decide_Rejected_WhenCallerIsNotTheBorrower(t *testing.T) {
	// arrange
	bookID := uuid.New()

	activeRecord := core.BuildBorrowRecord(bookID, uuid.New(), core.DueDays(7), time.Now())
	state := core.LendingState{BookExists: true, ActiveRecord: &activeRecord}

	command := returnbook.BuildCommand(bookID, uuid.New(), time.Now())

	// act
	decision := returnbook.Decide(state, command)

	// assert
	assert.True(t, decision.IsRejected())
	assert.ErrorIs(t, decision.Err(), core.ErrNotBorrower)
}
