package registerbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/core"
)

const (
	commandType = "RegisterBook"
)

// Metadata carries the optional pass-through catalog fields of a book.
// The fields are opaque to the lending domain.
type Metadata struct {
	Code          *string
	Publisher     *string
	PublishedDate *string
	ThumbnailURL  *string
}

// Command represents the intent to register a new book in the catalog.
type Command struct {
	BookID     uuid.UUID
	Title      core.Title
	Authors    core.Authors
	Metadata   Metadata
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a freshly generated book ID.
// Title and Authors must already be validated, see core.ParseTitle and core.ParseAuthors.
func BuildCommand(title core.Title, authors core.Authors, metadata Metadata, occurredAt time.Time) Command {
	return Command{
		BookID:     uuid.New(),
		Title:      title,
		Authors:    authors,
		Metadata:   metadata,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
