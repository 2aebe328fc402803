package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ValidateRoster checks the shape of a roster before it is published.
func ValidateRoster(r *models.Roster, loc *time.Location) error {
	start, err := booking.ParseDate(r.StartDate, loc)
	if err != nil {
		return err
	}
	end, err := booking.ParseDate(r.EndDate, loc)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return httperr.Validation("invalid_roster_range", "roster end date is before its start date")
	}
	if len(r.Assignments) == 0 {
		return httperr.Validation("empty_roster", "roster has no assignments")
	}

	type key struct {
		barber uuid.UUID
		date   string
	}
	seen := make(map[key]struct{}, len(r.Assignments))

	for i, a := range r.Assignments {
		d, err := booking.ParseDate(a.Date, loc)
		if err != nil {
			return err
		}
		if d.Before(start) || d.After(end) {
			return httperr.Validation(
				"assignment_out_of_range",
				fmt.Sprintf("assignment %d date %s is outside %s..%s", i, a.Date, r.StartDate, r.EndDate),
			)
		}

		k := key{barber: a.BarberID, date: a.Date}
		if _, dup := seen[k]; dup {
			return httperr.Validation(
				"duplicate_assignment",
				fmt.Sprintf("barber %s has two assignments on %s", a.BarberID, a.Date),
			)
		}
		seen[k] = struct{}{}

		if a.IsDayOff {
			continue
		}

		from, err := booking.ParseClock(a.StartTime)
		if err != nil {
			return err
		}
		to, err := booking.ParseClock(a.EndTime)
		if err != nil {
			return err
		}
		if to <= from {
			return httperr.Validation(
				"invalid_shift",
				fmt.Sprintf("assignment %d ends before it starts", i),
			)
		}
	}

	return nil
}
