package errors

import "errors"

var (
	ErrNotFound = errors.New("document not found")

	ErrInvalidID = errors.New("invalid document ID format")

	ErrSlotTaken = errors.New("slot already reserved")
)
