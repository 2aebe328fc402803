package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Settings is the scheduling policy shared by the booking use cases.
type Settings struct {
	Location         *time.Location
	Grid             domain.SlotGrid
	MinAdvance       time.Duration
	LateCancelCutoff time.Duration
	Policy           loyalty.Policy
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Location: timezone.Location(cfg.ShopTimezone),
		Grid: domain.SlotGrid{
			FirstHour: cfg.Scheduling.SlotFirstHour,
			LastHour:  cfg.Scheduling.SlotLastHour,
		},
		MinAdvance:       time.Duration(cfg.Scheduling.MinAdvanceMinutes) * time.Minute,
		LateCancelCutoff: time.Duration(cfg.Scheduling.LateCancelCutoffMinutes) * time.Minute,
		Policy:           loyalty.NewPolicy(cfg.Loyalty),
	}
}
