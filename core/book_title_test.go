package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibliofleet/lending-go/core"
)

func Test_ParseTitle_AcceptsValidTitles(t *testing.T) {
	for _, input := range []string{"A", "Domain-Driven Design", strings.Repeat("x", 200)} {
		title, err := core.ParseTitle(input)

		assert.NoError(t, err)
		assert.Equal(t, core.Title(input), title)
	}
}

func Test_ParseTitle_RejectsEmptyAndTooLong(t *testing.T) {
	for _, input := range []string{"", strings.Repeat("x", 201)} {
		_, err := core.ParseTitle(input)

		assert.ErrorIs(t, err, core.ErrInvalidTitle)
	}
}

func Test_ParseAuthors_RequiresAtLeastOne(t *testing.T) {
	_, err := core.ParseAuthors(nil)
	assert.ErrorIs(t, err, core.ErrInvalidAuthors)

	_, err = core.ParseAuthors([]string{})
	assert.ErrorIs(t, err, core.ErrInvalidAuthors)

	authors, err := core.ParseAuthors([]string{"Vlad Khononov"})
	assert.NoError(t, err)
	assert.Equal(t, core.Authors{"Vlad Khononov"}, authors)
}

func Test_ParseRemovalReason_KnownValuesOnly(t *testing.T) {
	for _, input := range []string{"transfer", "disposal", "lost", "other"} {
		reason, err := core.ParseRemovalReason(input)

		assert.NoError(t, err)
		assert.Equal(t, core.RemovalReason(input), reason)
	}

	for _, input := range []string{"", "stolen", "TRANSFER"} {
		_, err := core.ParseRemovalReason(input)

		assert.ErrorIs(t, err, core.ErrInvalidRemovalReason)
	}
}
