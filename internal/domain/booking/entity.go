package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition describes a state change applied with a conditional update.
type Transition struct {
	To     Status
	At     time.Time
	By     *uuid.UUID
	Reason string
}

func Cancel(by uuid.UUID, reason string, now time.Time) Transition {
	return Transition{To: StatusCancelled, At: now, By: &by, Reason: reason}
}

func Complete(now time.Time) Transition {
	return Transition{To: StatusCompleted, At: now}
}

func NoShow(by uuid.UUID, now time.Time) Transition {
	return Transition{To: StatusNoShow, At: now, By: &by}
}

// Apply mutates b as the transition would in storage.
func (t Transition) Apply(b *models.Booking) {
	b.Status = string(t.To)
	b.UpdatedAt = t.At

	switch t.To {
	case StatusCancelled, StatusNoShow:
		at := t.At
		b.CancelledAt = &at
		b.CancelledBy = t.By
		b.CancelReason = t.Reason
	case StatusCompleted:
		at := t.At
		b.CompletedAt = &at
	}
}

// Columns lists the fields the transition writes.
func (t Transition) Columns() map[string]any {
	cols := map[string]any{
		"status":     string(t.To),
		"updated_at": t.At,
	}

	switch t.To {
	case StatusCancelled, StatusNoShow:
		cols["cancelled_at"] = t.At
		cols["cancelled_by"] = t.By
		cols["cancel_reason"] = t.Reason
	case StatusCompleted:
		cols["completed_at"] = t.At
	}
	return cols
}

// IsLateCancellation reports whether now is inside the cutoff window that
// precedes slotStart.
func IsLateCancellation(slotStart, now time.Time, cutoff time.Duration) bool {
	return !now.Before(slotStart.Add(-cutoff))
}
