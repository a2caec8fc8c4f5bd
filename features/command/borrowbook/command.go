package borrowbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent to borrow a book for a lending period.
// It encapsulates all the necessary information required to execute the borrow book use case.
type Command struct {
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	DueDays    core.DueDays
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// DueDays must already be validated, see core.ParseDueDays.
func BuildCommand(bookID uuid.UUID, borrowerID uuid.UUID, dueDays core.DueDays, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		BorrowerID: borrowerID,
		DueDays:    dueDays,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
