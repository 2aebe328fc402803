package schedule

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type HiddenHours struct {
	repo  schedule.Repository
	loc   *time.Location
	grid  domain.SlotGrid
	now   timezone.Clock
	audit *audit.Dispatcher
}

func NewHiddenHours(
	repo schedule.Repository,
	loc *time.Location,
	grid domain.SlotGrid,
	now timezone.Clock,
	audit *audit.Dispatcher,
) *HiddenHours {
	return &HiddenHours{
		repo:  repo,
		loc:   loc,
		grid:  grid,
		now:   now,
		audit: audit,
	}
}

// Set replaces the hidden slots of barberID on date. Barbers may only edit
// their own hours; admins may edit anyone's.
func (uc *HiddenHours) Set(
	ctx context.Context,
	actor identity.Actor,
	barberID uuid.UUID,
	date string,
	slots []string,
) ([]string, error) {

	switch {
	case actor.IsAdmin():
	case actor.IsBarber() && actor.UserID == barberID:
	default:
		return nil, httperr.Forbidden("not_your_hours", "only the barber or an admin can change hidden hours")
	}

	day, err := domain.ParseDate(date, uc.loc)
	if err != nil {
		return nil, err
	}
	if day.Before(domain.StartOfDay(uc.now().In(uc.loc))) {
		return nil, httperr.Validation("date_in_past", "hidden hours cannot be changed for past dates")
	}
	date = day.Format(domain.DateLayout)

	if err := uc.requireBarber(ctx, barberID); err != nil {
		return nil, err
	}

	normalized, err := uc.normalize(slots)
	if err != nil {
		return nil, err
	}

	hours := make([]models.HiddenHour, 0, len(normalized))
	for _, s := range normalized {
		hours = append(hours, models.HiddenHour{
			ID:            uuid.New(),
			BarberID:      barberID,
			Date:          date,
			TimeSlot:      s,
			CreatedBy:     actor.UserID,
			CreatedByRole: actor.Role,
		})
	}

	if err := uc.repo.ReplaceHiddenHours(ctx, barberID, date, hours); err != nil {
		return nil, err
	}

	log.Info().
		Str("barber_id", barberID.String()).
		Str("date", date).
		Strs("slots", normalized).
		Str("actor_role", actor.Role).
		Msg("hidden hours updated")

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.UserID,
		ActorRole: actor.Role,
		Action:    "hidden_hours_updated",
		Entity:    "barber",
		EntityID:  &barberID,
		Metadata: map[string]any{
			"date":  date,
			"slots": normalized,
		},
	})

	return normalized, nil
}

func (uc *HiddenHours) List(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {

	day, err := domain.ParseDate(date, uc.loc)
	if err != nil {
		return nil, err
	}

	hours, err := uc.repo.ListHiddenHours(ctx, barberID, day.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, len(hours))
	for _, h := range hours {
		slots = append(slots, h.TimeSlot)
	}
	sortSlots(slots)
	return slots, nil
}

func (uc *HiddenHours) normalize(slots []string) ([]string, error) {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))

	for _, raw := range slots {
		h, err := domain.ParseSlot(raw)
		if err != nil {
			return nil, err
		}
		if !uc.grid.Contains(h) {
			return nil, httperr.Validation("invalid_time_slot", "hidden hour is outside opening hours")
		}
		s := domain.FormatSlot(h)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	sortSlots(out)
	return out, nil
}

func (uc *HiddenHours) requireBarber(ctx context.Context, id uuid.UUID) error {
	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.Validation("barber_not_found", "barber does not exist")
		}
		return err
	}
	if u.Role != models.RoleBarber {
		return httperr.Validation("barber_not_found", "barber does not exist")
	}
	return nil
}

func sortSlots(slots []string) {
	sort.SliceStable(slots, func(i, j int) bool {
		hi, _ := domain.ParseSlot(slots[i])
		hj, _ := domain.ParseSlot(slots[j])
		return hi < hj
	})
}
