package core

import "errors"

// ErrInvalidAuthors is returned when the authors list is empty.
var ErrInvalidAuthors = errors.New("authors must have at least one author")

// Authors is a validated, ordered list of author names.
type Authors []string

// ParseAuthors validates the raw authors list and returns it as Authors.
func ParseAuthors(authors []string) (Authors, error) {
	if len(authors) == 0 {
		return nil, ErrInvalidAuthors
	}

	return Authors(authors), nil
}
