package core

import "errors"

// ErrInvalidRemovalReason is returned when the removal reason is missing or not one of the known values.
var ErrInvalidRemovalReason = errors.New("removal reason must be one of: transfer, disposal, lost, other")

// RemovalReason explains why a book is removed from the catalog.
type RemovalReason string

const (
	RemovalReasonTransfer RemovalReason = "transfer"
	RemovalReasonDisposal RemovalReason = "disposal"
	RemovalReasonLost     RemovalReason = "lost"
	RemovalReasonOther    RemovalReason = "other"
)

// ParseRemovalReason validates the raw reason string.
func ParseRemovalReason(s string) (RemovalReason, error) {
	switch s {
	case string(RemovalReasonTransfer):
		return RemovalReasonTransfer, nil
	case string(RemovalReasonDisposal):
		return RemovalReasonDisposal, nil
	case string(RemovalReasonLost):
		return RemovalReasonLost, nil
	case string(RemovalReasonOther):
		return RemovalReasonOther, nil
	default:
		return "", ErrInvalidRemovalReason
	}
}
