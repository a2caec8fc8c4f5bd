package removebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/command/removebook"
)

func Test_Decide_Remove_WhenBookExistsAndNotBorrowed(t *testing.T) {
	command := removebook.BuildCommand(uuid.New(), core.RemovalReasonDisposal, "water damage", time.Now())

	decision := removebook.Decide(core.LendingState{BookExists: true}, command)

	assert.True(t, decision.IsRemove())
	assert.False(t, decision.IsRejected())
}

func Test_Decide_Rejected_WhenBookDoesNotExist(t *testing.T) {
	command := removebook.BuildCommand(uuid.New(), core.RemovalReasonLost, "", time.Now())

	decision := removebook.Decide(core.LendingState{}, command)

	assert.True(t, decision.IsRejected())
	assert.ErrorIs(t, decision.Err(), core.ErrBookNotFound)
}

func Test_Decide_Rejected_WhenBookIsBorrowed(t *testing.T) {
	// arrange
	bookID := uuid.New()
	activeRecord := core.BuildBorrowRecord(bookID, uuid.New(), core.DueDays(7), time.Now())
	state := core.LendingState{BookExists: true, ActiveRecord: &activeRecord}

	command := removebook.BuildCommand(bookID, core.RemovalReasonTransfer, "", time.Now())

	// act
	decision := removebook.Decide(state, command)

	// assert - removal must wait until the book is returned
	assert.True(t, decision.IsRejected())
	assert.ErrorIs(t, decision.Err(), core.ErrBookBorrowed)
}
