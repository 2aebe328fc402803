package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CompleteBooking struct {
	repo     domain.Repository
	settings Settings
	now      timezone.Clock
	audit    *audit.Dispatcher
	notifier notify.Notifier
}

func NewCompleteBooking(
	repo domain.Repository,
	settings Settings,
	now timezone.Clock,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *CompleteBooking {
	return &CompleteBooking{
		repo:     repo,
		settings: settings,
		now:      now,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *CompleteBooking) Execute(
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

	var credited int
	customerID := b.CustomerID

	b, changed, err := transition(ctx, uc.repo, b, domain.Complete(now),
		func(tx domain.Repository) error {
			ledger := tx.Ledger()

			// Points follow the tier held before this visit is counted.
			acc, err := ledger.GetOrCreate(ctx, customerID)
			if err != nil {
				return err
			}
			credited = uc.settings.Policy.PointsFor(loyalty.Tier(acc.StatusTier))

			return ledger.RecordVisit(ctx, customerID, credited, uc.settings.Policy)
		},
	)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	metrics.LoyaltyPoints.WithLabelValues("visit_credit").Add(float64(credited))

	log.Info().
		Str("booking_id", b.ID.String()).
		Int("points", credited).
		Msg("booking completed")

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.UserID,
		ActorRole: actor.Role,
		Action:    "booking_completed",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  map[string]any{"points": credited},
	})

	uc.notifier.Notify(notify.Notification{
		Type:       notify.TypeBookingCompleted,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		BarberID:   b.BarberID,
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		OccurredAt: now,
	})

	return b, nil
}
