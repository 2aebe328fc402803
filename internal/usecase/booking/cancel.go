package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	settings Settings
	now      timezone.Clock
	audit    *audit.Dispatcher
	notifier notify.Notifier
}

func NewCancelBooking(
	repo domain.Repository,
	settings Settings,
	now timezone.Clock,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		settings: settings,
		now:      now,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	actor identity.Actor,
	reason string,
) (*models.Booking, error) {

	b, err := loadBooking(ctx, uc.repo, bookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeCancel(actor, b); err != nil {
		return nil, err
	}

	now := uc.now().In(uc.settings.Location)

	slotStart, err := domain.SlotStart(b.Date, b.TimeSlot, uc.settings.Location)
	if err != nil {
		return nil, err
	}

	// Late cancellations by the shop side cost the customer points.
	penalty := 0
	if actor.IsStaff() && domain.IsLateCancellation(slotStart, now, uc.settings.LateCancelCutoff) {
		penalty = uc.settings.Policy.LateCancelPenalty
	}

	customerID := b.CustomerID
	b, changed, err := transition(ctx, uc.repo, b, domain.Cancel(actor.UserID, reason, now),
		func(tx domain.Repository) error {
			return tx.Ledger().Penalize(ctx, customerID, penalty)
		},
	)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	if penalty > 0 {
		metrics.LoyaltyPoints.WithLabelValues("late_cancel_penalty").Add(float64(penalty))
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("actor_role", actor.Role).
		Int("penalty", penalty).
		Msg("booking cancelled")

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.UserID,
		ActorRole: actor.Role,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"reason":  reason,
			"penalty": penalty,
		},
	})

	uc.notifier.Notify(notify.Notification{
		Type:       notify.TypeBookingCancelled,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		BarberID:   b.BarberID,
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		OccurredAt: now,
	})

	return b, nil
}

func authorizeCancel(actor identity.Actor, b *models.Booking) error {
	if actor.IsCustomer() {
		if b.CustomerID != actor.UserID {
			return httperr.Forbidden("not_your_booking", "this booking belongs to another customer")
		}
		return nil
	}
	return authorizeStaff(actor, b)
}
