package users

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUserName is returned when a display name is empty or longer than 50 characters.
var ErrInvalidUserName = errors.New("name must be 1-50 characters")

const maxUserNameLength = 50

// ParseUserName validates a display name, 1 to 50 characters after trimming.
func ParseUserName(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxUserNameLength {
		return "", ErrInvalidUserName
	}

	return trimmed, nil
}
