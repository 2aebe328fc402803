package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func loadBooking(ctx context.Context, repo domain.Repository, id uuid.UUID) (*models.Booking, error) {
	b, err := repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("booking_not_found", "booking does not exist")
		}
		return nil, err
	}
	return b, nil
}

// authorizeStaff allows admins everywhere and barbers on their own chair.
func authorizeStaff(actor identity.Actor, b *models.Booking) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsBarber() && b.BarberID == actor.UserID:
		return nil
	case actor.IsBarber():
		return httperr.Forbidden("not_your_booking", "this booking belongs to another barber")
	default:
		return httperr.Forbidden("staff_only", "only barbers or admins can do this")
	}
}

// transition moves b from confirmed to t.To. A repeat of the current state
// returns (b, false, nil); after runs inside the same transaction only when
// this call performed the change.
func transition(
	ctx context.Context,
	repo domain.Repository,
	b *models.Booking,
	t domain.Transition,
	after func(tx domain.Repository) error,
) (*models.Booking, bool, error) {

	apply, err := domain.CheckTransition(domain.Status(b.Status), t.To)
	if err != nil {
		metrics.Transitions.WithLabelValues(string(t.To), "rejected").Inc()
		return nil, false, err
	}
	if !apply {
		metrics.Transitions.WithLabelValues(string(t.To), "repeat").Inc()
		return b, false, nil
	}

	var changed bool
	err = repo.Transaction(ctx, func(tx domain.Repository) error {
		ok, err := tx.TransitionBooking(ctx, b.ID, domain.StatusConfirmed, t)
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race: someone else moved it first.
			latest, err := loadBooking(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if _, err := domain.CheckTransition(domain.Status(latest.Status), t.To); err != nil {
				return err
			}
			*b = *latest
			return nil
		}

		changed = true
		t.Apply(b)

		if after != nil {
			return after(tx)
		}
		return nil
	})
	if err != nil {
		metrics.Transitions.WithLabelValues(string(t.To), "error").Inc()
		return nil, false, err
	}

	if changed {
		metrics.Transitions.WithLabelValues(string(t.To), "applied").Inc()
	} else {
		metrics.Transitions.WithLabelValues(string(t.To), "repeat").Inc()
	}
	return b, changed, nil
}

// requireStarted rejects chair-side outcomes for slots that have not begun.
func requireStarted(b *models.Booking, now time.Time, s Settings) error {
	start, err := domain.SlotStart(b.Date, b.TimeSlot, s.Location)
	if err != nil {
		return err
	}
	if now.Before(start) {
		return httperr.InvalidTransition("booking_not_started", "the booking time has not arrived yet")
	}
	return nil
}
