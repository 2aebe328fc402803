package schedule

import (
	"context"
	"errors"
	"fmt"
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

type AssignmentInput struct {
	BarberID  uuid.UUID
	Date      string
	StartTime string
	EndTime   string
	IsDayOff  bool
}

type PublishRosterInput struct {
	Actor       identity.Actor
	StartDate   string
	EndDate     string
	Assignments []AssignmentInput
}

type PublishRoster struct {
	repo  schedule.Repository
	loc   *time.Location
	now   timezone.Clock
	audit *audit.Dispatcher
}

func NewPublishRoster(
	repo schedule.Repository,
	loc *time.Location,
	now timezone.Clock,
	audit *audit.Dispatcher,
) *PublishRoster {
	return &PublishRoster{
		repo:  repo,
		loc:   loc,
		now:   now,
		audit: audit,
	}
}

func (uc *PublishRoster) Execute(
	ctx context.Context,
	in PublishRosterInput,
) (*models.Roster, error) {

	if !in.Actor.IsAdmin() {
		return nil, httperr.Forbidden("admins_only", "only admins can publish rosters")
	}

	roster := &models.Roster{
		ID:          uuid.New(),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		PublishedAt: uc.now(),
		PublishedBy: in.Actor.UserID,
	}

	for _, a := range in.Assignments {
		roster.Assignments = append(roster.Assignments, models.RosterAssignment{
			ID:        uuid.New(),
			RosterID:  roster.ID,
			BarberID:  a.BarberID,
			Date:      a.Date,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			IsDayOff:  a.IsDayOff,
		})
	}

	if err := schedule.ValidateRoster(roster, uc.loc); err != nil {
		return nil, err
	}

	checked := map[uuid.UUID]struct{}{}
	for _, a := range roster.Assignments {
		if _, ok := checked[a.BarberID]; ok {
			continue
		}
		if err := uc.requireBarber(ctx, a.BarberID); err != nil {
			return nil, err
		}
		checked[a.BarberID] = struct{}{}
	}

	if err := uc.repo.CreateRoster(ctx, roster); err != nil {
		return nil, err
	}

	log.Info().
		Str("roster_id", roster.ID.String()).
		Str("start_date", roster.StartDate).
		Str("end_date", roster.EndDate).
		Int("assignments", len(roster.Assignments)).
		Msg("roster published")

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.Actor.UserID,
		ActorRole: in.Actor.Role,
		Action:    "roster_published",
		Entity:    "roster",
		EntityID:  &roster.ID,
		Metadata: map[string]any{
			"start_date":  roster.StartDate,
			"end_date":    roster.EndDate,
			"assignments": len(roster.Assignments),
		},
	})

	return roster, nil
}

func (uc *PublishRoster) requireBarber(ctx context.Context, id uuid.UUID) error {
	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.Validation("barber_not_found", fmt.Sprintf("barber %s does not exist", id))
		}
		return err
	}
	if u.Role != models.RoleBarber {
		return httperr.Validation("barber_not_found", fmt.Sprintf("user %s is not a barber", id))
	}
	return nil
}
