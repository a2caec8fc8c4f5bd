package users_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliofleet/lending-go/users"
)

func Test_ParseUserName(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{name: "plain name", input: "Jane Reader", expected: "Jane Reader"},
		{name: "trims whitespace", input: "  Jane Reader  ", expected: "Jane Reader"},
		{name: "single rune", input: "J", expected: "J"},
		{name: "max length", input: strings.Repeat("x", 50), expected: strings.Repeat("x", 50)},
		{name: "multibyte runes count once", input: strings.Repeat("ä", 50), expected: strings.Repeat("ä", 50)},
		{name: "empty", input: "", expectedErr: users.ErrInvalidUserName},
		{name: "only whitespace", input: "   ", expectedErr: users.ErrInvalidUserName},
		{name: "too long", input: strings.Repeat("x", 51), expectedErr: users.ErrInvalidUserName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := users.ParseUserName(tc.input)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed)
		})
	}
}

func Test_MemoryDirectory_UpsertAndLookup(t *testing.T) {
	// arrange
	directory := users.NewMemoryDirectory()
	userID := uuid.New()

	// act
	require.NoError(t, directory.Upsert(context.Background(), userID, "Jane Reader"))

	// assert
	name, err := directory.DisplayName(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Reader", name)
}

func Test_MemoryDirectory_UpsertRefreshesName(t *testing.T) {
	// arrange
	directory := users.NewMemoryDirectory()
	userID := uuid.New()
	require.NoError(t, directory.Upsert(context.Background(), userID, "Jane Reader"))

	// act
	require.NoError(t, directory.Upsert(context.Background(), userID, "Jane R."))

	// assert
	name, err := directory.DisplayName(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Jane R.", name)
}

func Test_MemoryDirectory_UnknownUser(t *testing.T) {
	// arrange
	directory := users.NewMemoryDirectory()

	// act
	_, err := directory.DisplayName(context.Background(), uuid.New())

	// assert
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}
