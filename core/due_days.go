package core

import (
	"errors"
	"time"
)

// DefaultDueDays is the lending period applied when the borrower does not request one.
const DefaultDueDays = 7

// ErrInvalidDueDays is returned when the requested lending period is not a positive number of days.
var ErrInvalidDueDays = errors.New("due days must be at least 1")

// DueDays is a validated lending period in whole days.
type DueDays int

// ParseDueDays validates an optional requested lending period,
// falling back to DefaultDueDays when none is requested.
func ParseDueDays(requested *int) (DueDays, error) {
	if requested == nil {
		return DueDays(DefaultDueDays), nil
	}

	if *requested < 1 {
		return 0, ErrInvalidDueDays
	}

	return DueDays(*requested), nil
}

// DueDateFrom computes the due date by adding the lending period to the base instant.
// For a fresh borrow the base is "now"; for an extension it is the previous due date,
// so repeated extensions compound instead of resetting the clock.
func (d DueDays) DueDateFrom(base time.Time) time.Time {
	return base.AddDate(0, 0, int(d))
}
