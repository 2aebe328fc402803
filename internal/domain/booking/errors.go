package booking

import "errors"

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("booking: record not found")

	// ErrSlotTaken is returned when the active-slot unique index rejects an insert.
	ErrSlotTaken = errors.New("booking: slot already taken")
)
