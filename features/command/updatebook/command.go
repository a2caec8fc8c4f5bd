package updatebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/core"
)

const (
	commandType = "UpdateBook"
)

// Patch carries the fields to replace. A nil field means "leave unchanged".
// Title and Authors must already be validated when present, see
// core.ParseTitle and core.ParseAuthors.
type Patch struct {
	Title         *core.Title
	Authors       core.Authors // nil when absent
	Code          *string
	Publisher     *string
	PublishedDate *string
	ThumbnailURL  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil &&
		p.Authors == nil &&
		p.Code == nil &&
		p.Publisher == nil &&
		p.PublishedDate == nil &&
		p.ThumbnailURL == nil
}

// Command represents the intent to partially update a book's catalog data.
type Command struct {
	BookID     uuid.UUID
	Patch      Patch
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, patch Patch, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Patch:      patch,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
