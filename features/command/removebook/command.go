package removebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/core"
)

const (
	commandType = "RemoveBook"
)

// Command represents the intent to remove a book from the catalog.
type Command struct {
	BookID     uuid.UUID
	Reason     core.RemovalReason
	Memo       string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// Reason must already be validated, see core.ParseRemovalReason.
func BuildCommand(bookID uuid.UUID, reason core.RemovalReason, memo string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Reason:     reason,
		Memo:       memo,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
