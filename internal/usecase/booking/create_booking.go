package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RewardContext struct {
	ServiceID uuid.UUID
}

type CreateBookingInput struct {
	Actor identity.Actor

	BarberID   uuid.UUID
	Date       string
	TimeSlot   string
	ServiceIDs []uuid.UUID

	Reward *RewardContext
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo         domain.Repository
	availability *GetAvailability
	settings     Settings
	now          timezone.Clock
	audit        *audit.Dispatcher
	notifier     notify.Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	settings Settings,
	now timezone.Clock,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		availability: NewGetAvailability(repo, settings, now),
		settings:     settings,
		now:          now,
		audit:        audit,
		notifier:     notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	b, err := uc.execute(ctx, in)
	metrics.Admissions.WithLabelValues(admissionOutcome(err)).Inc()
	return b, err
}

func (uc *CreateBooking) execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Shape of the request
	// --------------------------------------------------
	if !in.Actor.IsCustomer() {
		return nil, httperr.Forbidden("customers_only", "only customers can book")
	}

	day, slot, err := uc.validateRequest(in)
	if err != nil {
		return nil, err
	}

	if err := requireBarber(ctx, uc.repo, in.BarberID); err != nil {
		return nil, err
	}

	services, err := uc.loadServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	var reward *models.Service
	if in.Reward != nil {
		reward, err = rewardService(services, in.Reward.ServiceID)
		if err != nil {
			return nil, err
		}
	}

	date := day.Format(domain.DateLayout)

	b := &models.Booking{
		ID:         uuid.New(),
		BarberID:   in.BarberID,
		CustomerID: in.Actor.UserID,
		Date:       date,
		TimeSlot:   slot,
		ServiceIDs: models.UUIDList(in.ServiceIDs),
		TotalPrice: totalPrice(services, reward),
		Status:     string(domain.InitialStatus()),
	}
	if reward != nil {
		b.IsRewardBooking = true
		b.PointsRedeemed = reward.RedemptionPoints
	}

	// --------------------------------------------------
	// 2-4. Slot freshness, points, insert (one transaction)
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		available, err := uc.availability.resolve(ctx, tx, in.BarberID, day)
		if err != nil {
			return err
		}
		if !slices.Contains(available, slot) {
			return httperr.SlotUnavailable("slot_unavailable", "this time slot is no longer available")
		}

		if reward != nil {
			if err := debitReward(ctx, tx.Ledger(), in.Actor.UserID, reward.RedemptionPoints); err != nil {
				return err
			}
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				return httperr.Conflict("slot_conflict", "this time slot was just booked by someone else")
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.logRejection(in, date, slot, err)
		return nil, err
	}

	if reward != nil {
		metrics.LoyaltyPoints.WithLabelValues("redeem").Add(float64(reward.RedemptionPoints))
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("barber_id", b.BarberID.String()).
		Str("date", b.Date).
		Str("time_slot", b.TimeSlot).
		Bool("reward", b.IsRewardBooking).
		Msg("booking created")

	// --------------------------------------------------
	// 5. Side effects (best effort)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.Actor.UserID,
		ActorRole: in.Actor.Role,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"date":            b.Date,
			"time_slot":       b.TimeSlot,
			"points_redeemed": b.PointsRedeemed,
		},
	})

	uc.notifier.Notify(notify.Notification{
		Type:       notify.TypeBookingCreated,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		BarberID:   b.BarberID,
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		OccurredAt: uc.now(),
	})

	return b, nil
}

func (uc *CreateBooking) validateRequest(in CreateBookingInput) (day time.Time, slot string, err error) {
	day, err = domain.ParseDate(in.Date, uc.settings.Location)
	if err != nil {
		return day, "", err
	}

	now := uc.now().In(uc.settings.Location)
	if day.Before(domain.StartOfDay(now)) {
		return day, "", httperr.Validation("date_in_past", "bookings cannot be made for past dates")
	}

	hour, err := domain.ParseSlot(in.TimeSlot)
	if err != nil {
		return day, "", err
	}
	if !uc.settings.Grid.Contains(hour) {
		return day, "", httperr.Validation("invalid_time_slot", "time slot is outside opening hours")
	}

	if len(in.ServiceIDs) == 0 {
		return day, "", httperr.Validation("missing_services", "at least one service is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		if _, dup := seen[id]; dup {
			return day, "", httperr.Validation("duplicate_service", "a service was selected twice")
		}
		seen[id] = struct{}{}
	}

	return day, domain.FormatSlot(hour), nil
}

func (uc *CreateBooking) loadServices(ctx context.Context, ids []uuid.UUID) ([]models.Service, error) {
	services, err := uc.repo.GetServices(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	ordered := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || !s.Active {
			return nil, httperr.Validation("service_not_found", fmt.Sprintf("service %s does not exist", id))
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}

func (uc *CreateBooking) logRejection(in CreateBookingInput, date, slot string, err error) {
	ev := log.Warn()
	if _, ok := httperr.AsBusiness(err); !ok {
		ev = log.Error()
	}
	ev.Err(err).
		Str("outcome", admissionOutcome(err)).
		Str("barber_id", in.BarberID.String()).
		Str("customer_id", in.Actor.UserID.String()).
		Str("date", date).
		Str("time_slot", slot).
		Msg("booking rejected")
}

func rewardService(services []models.Service, id uuid.UUID) (*models.Service, error) {
	for i := range services {
		if services[i].ID != id {
			continue
		}
		if !services[i].IsRedeemable || services[i].RedemptionPoints <= 0 {
			return nil, httperr.Validation("service_not_redeemable", "this service cannot be paid with points")
		}
		return &services[i], nil
	}
	return nil, httperr.Validation("reward_service_not_selected", "the reward service must be one of the booked services")
}

// debitReward checks the balance first so the failure can carry the
// shortfall, then relies on the conditional debit for the final word.
func debitReward(ctx context.Context, ledger loyalty.Ledger, customerID uuid.UUID, cost int) error {
	acc, err := ledger.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}
	if acc.RedeemablePoints < cost {
		return httperr.InsufficientPoints(cost, acc.RedeemablePoints)
	}

	if err := ledger.Debit(ctx, customerID, cost); err != nil {
		if errors.Is(err, loyalty.ErrInsufficientPoints) {
			latest, readErr := ledger.GetOrCreate(ctx, customerID)
			if readErr != nil {
				return readErr
			}
			return httperr.InsufficientPoints(cost, latest.RedeemablePoints)
		}
		return err
	}
	return nil
}

func totalPrice(services []models.Service, reward *models.Service) float64 {
	var total float64
	for _, s := range services {
		if reward != nil && s.ID == reward.ID {
			continue
		}
		total += s.Price
	}
	return total
}

func admissionOutcome(err error) string {
	if err == nil {
		return "created"
	}
	if be, ok := httperr.AsBusiness(err); ok {
		return string(be.Kind)
	}
	return "error"
}
