package core

import "errors"

// ErrInvalidTitle is returned when a title is empty or longer than 200 characters.
var ErrInvalidTitle = errors.New("title must be 1-200 characters")

// Title is a validated book title.
type Title string

// ParseTitle validates the raw title and returns it as a Title.
func ParseTitle(s string) (Title, error) {
	if len(s) < 1 || len(s) > 200 {
		return "", ErrInvalidTitle
	}

	return Title(s), nil
}
