package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type MarkNoShow struct {
	repo     domain.Repository
	settings Settings
	now      timezone.Clock
	audit    *audit.Dispatcher
	notifier notify.Notifier
}

func NewMarkNoShow(
	repo domain.Repository,
	settings Settings,
	now timezone.Clock,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *MarkNoShow {
	return &MarkNoShow{
		repo:     repo,
		settings: settings,
		now:      now,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	actor identity.Actor,
) (*models.Booking, error) {

	b, err := loadBooking(ctx, uc.repo, bookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeStaff(actor, b); err != nil {
		return nil, err
	}

	now := uc.now().In(uc.settings.Location)

	if domain.Status(b.Status) == domain.StatusConfirmed {
		if err := requireStarted(b, now, uc.settings); err != nil {
			return nil, err
		}
	}

	penalty := uc.settings.Policy.NoShowPenalty
	customerID := b.CustomerID

	b, changed, err := transition(ctx, uc.repo, b, domain.NoShow(actor.UserID, now),
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

	metrics.LoyaltyPoints.WithLabelValues("no_show_penalty").Add(float64(penalty))

	log.Info().
		Str("booking_id", b.ID.String()).
		Int("penalty", penalty).
		Msg("booking marked as no-show")

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.UserID,
		ActorRole: actor.Role,
		Action:    "booking_no_show",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  map[string]any{"penalty": penalty},
	})

	uc.notifier.Notify(notify.Notification{
		Type:       notify.TypeBookingNoShow,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		BarberID:   b.BarberID,
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		OccurredAt: now,
	})

	return b, nil
}
