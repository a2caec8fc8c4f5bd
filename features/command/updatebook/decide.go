package updatebook

import (
	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
)

type decisionKind int

const (
	decisionUpdate decisionKind = iota
	decisionNoop
)

// Decision is the tagged outcome of deciding an update command against the
// current book row: a patched row to write, or a no-op for an empty patch.
type Decision struct {
	kind decisionKind
	row  catalogstore.BookRow
}

// UpdateDecision creates a Decision that writes the patched row.
func UpdateDecision(row catalogstore.BookRow) Decision {
	return Decision{kind: decisionUpdate, row: row}
}

// NoopDecision creates a Decision that changes nothing.
func NoopDecision() Decision {
	return Decision{kind: decisionNoop}
}

// IsNoop reports whether the decision changes nothing.
func (d Decision) IsNoop() bool {
	return d.kind == decisionNoop
}

// Row returns the patched row to write. Only meaningful for update decisions.
func (d Decision) Row() catalogstore.BookRow {
	return d.row
}

// Decide applies the patch to the current row. This is a pure function with no
// side effects. An empty patch yields a no-op decision; otherwise the patched
// row carries a fresh update timestamp and a bumped version for the
// compare-and-set write.
func Decide(row catalogstore.BookRow, command Command) Decision {
	if command.Patch.IsEmpty() {
		return NoopDecision()
	}

	patched := row

	if command.Patch.Title != nil {
		patched.Title = string(*command.Patch.Title)
	}

	if command.Patch.Authors != nil {
		patched.Authors = command.Patch.Authors
	}

	if command.Patch.Code != nil {
		patched.Code = command.Patch.Code
	}

	if command.Patch.Publisher != nil {
		patched.Publisher = command.Patch.Publisher
	}

	if command.Patch.PublishedDate != nil {
		patched.PublishedDate = command.Patch.PublishedDate
	}

	if command.Patch.ThumbnailURL != nil {
		patched.ThumbnailURL = command.Patch.ThumbnailURL
	}

	patched.UpdatedAt = core.ToOccurredAt(command.OccurredAt)
	patched.Version = row.Version + 1

	return UpdateDecision(patched)
}
