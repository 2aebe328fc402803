package booking

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// ActiveStatuses occupy a slot.
var ActiveStatuses = []Status{StatusConfirmed, StatusCompleted}

func (s Status) Occupies() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

// CheckTransition reports whether moving current to target changes state.
// Repeating the target state is a no-op; every other move out of a
// non-confirmed state is rejected.
func CheckTransition(current, target Status) (bool, error) {
	if current == target {
		return false, nil
	}
	if current != StatusConfirmed {
		return false, httperr.InvalidTransition(
			"invalid_state",
			fmt.Sprintf("booking is %s and cannot become %s", current, target),
		)
	}
	return true, nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
