package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	SlotLayout  = "03:04 PM"
	ClockLayout = "15:04"
)

// SlotGrid is the inclusive range of hourly slot starts offered to clients.
type SlotGrid struct {
	FirstHour int
	LastHour  int
}

func DefaultGrid() SlotGrid {
	return SlotGrid{FirstHour: 9, LastHour: 17}
}

func FormatSlot(hour int) string {
	return time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC).Format(SlotLayout)
}

// ParseSlot returns the hour of an "HH:MM AM/PM" slot. Only whole hours
// are valid slots.
func ParseSlot(s string) (int, error) {
	t, err := time.Parse(SlotLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, httperr.Validation("invalid_time_slot", fmt.Sprintf("time slot %q must look like 09:00 AM", s))
	}
	if t.Minute() != 0 {
		return 0, httperr.Validation("invalid_time_slot", fmt.Sprintf("time slot %q is not on the hourly grid", s))
	}
	return t.Hour(), nil
}

// NormalizeSlot parses and re-formats s so stored slots compare equal.
func NormalizeSlot(s string) (string, error) {
	h, err := ParseSlot(s)
	if err != nil {
		return "", err
	}
	return FormatSlot(h), nil
}

func (g SlotGrid) Contains(hour int) bool {
	return hour >= g.FirstHour && hour <= g.LastHour
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", fmt.Sprintf("date %q must be YYYY-MM-DD", s))
	}
	return d, nil
}

// ParseClock converts "HH:MM" (24h) into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, httperr.Validation("invalid_shift_time", fmt.Sprintf("shift time %q must be HH:MM", s))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SlotStart is the instant a slot begins on date, in loc.
func SlotStart(date, slot string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	h, err := ParseSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, loc), nil
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
