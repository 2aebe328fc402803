package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
	now      timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	settings Settings,
	now timezone.Clock,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
		now:      now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {

	day, err := domain.ParseDate(date, uc.settings.Location)
	if err != nil {
		return nil, err
	}

	if err := requireBarber(ctx, uc.repo, barberID); err != nil {
		return nil, err
	}

	metrics.SlotQueries.Inc()
	return uc.resolve(ctx, uc.repo, barberID, day)
}

// resolve takes the repository explicitly so admission can re-run it
// against its own transaction.
func (uc *GetAvailability) resolve(
	ctx context.Context,
	repo domain.Repository,
	barberID uuid.UUID,
	day time.Time,
) ([]string, error) {

	now := uc.now().In(uc.settings.Location)
	if day.Before(domain.StartOfDay(now)) {
		return []string{}, nil
	}

	date := day.Format(domain.DateLayout)

	assignment, roster, err := repo.GetRosterAssignment(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	if assignment == nil || assignment.IsDayOff {
		return []string{}, nil
	}

	hidden, err := repo.ListHiddenHours(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	occupied, err := repo.ListOccupiedSlots(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	return domain.ResolveSlots(domain.AvailabilityInput{
		Date:       day,
		Now:        now,
		Roster:     roster,
		Assignment: assignment,
		Hidden:     hiddenSlots(hidden),
		Occupied:   occupied,
		Grid:       uc.settings.Grid,
		MinAdvance: uc.settings.MinAdvance,
	}), nil
}

func hiddenSlots(hours []models.HiddenHour) []string {
	out := make([]string, 0, len(hours))
	for _, h := range hours {
		if s, err := domain.NormalizeSlot(h.TimeSlot); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func requireBarber(ctx context.Context, repo domain.Repository, barberID uuid.UUID) error {
	if barberID == uuid.Nil {
		return httperr.Validation("invalid_barber_id", "barber id is required")
	}

	barber, err := repo.GetUser(ctx, barberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.Validation("barber_not_found", "barber does not exist")
		}
		return err
	}
	if barber.Role != models.RoleBarber || !barber.Active {
		return httperr.Validation("barber_not_found", "barber does not exist")
	}
	return nil
}
