package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AvailabilityInput struct {
	// Date is midnight of the requested day in the shop timezone.
	Date time.Time
	Now  time.Time

	Roster     *models.Roster
	Assignment *models.RosterAssignment

	Hidden   []string
	Occupied []string

	Grid       SlotGrid
	MinAdvance time.Duration
}

// ResolveSlots combines roster, hidden hours and occupied slots into the
// bookable slots for one barber and day, in chronological order.
func ResolveSlots(in AvailabilityInput) []string {
	slots := []string{}

	if in.Roster == nil || in.Assignment == nil || in.Assignment.IsDayOff {
		return slots
	}

	day := in.Date.Format(DateLayout)
	if day < in.Roster.StartDate || day > in.Roster.EndDate {
		return slots
	}

	if in.Date.Before(StartOfDay(in.Now)) {
		return slots
	}

	shiftStart, err := ParseClock(in.Assignment.StartTime)
	if err != nil {
		return slots
	}
	shiftEnd, err := ParseClock(in.Assignment.EndTime)
	if err != nil {
		return slots
	}

	blocked := make(map[string]struct{}, len(in.Hidden)+len(in.Occupied))
	for _, s := range in.Hidden {
		blocked[s] = struct{}{}
	}
	for _, s := range in.Occupied {
		blocked[s] = struct{}{}
	}

	cutoff := in.Now.Add(in.MinAdvance)
	loc := in.Date.Location()

	for h := in.Grid.FirstHour; h <= in.Grid.LastHour; h++ {
		minute := h * 60
		if minute < shiftStart || minute > shiftEnd {
			continue
		}

		slot := FormatSlot(h)
		if _, taken := blocked[slot]; taken {
			continue
		}

		start := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), h, 0, 0, 0, loc)
		if start.Before(cutoff) {
			continue
		}

		slots = append(slots, slot)
	}

	return slots
}
