package models

import (
	"time"

	"github.com/google/uuid"
)

// HiddenHour is a barber-initiated blackout of one hourly slot.
type HiddenHour struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_hidden_hour" json:"barber_id"`
	Date     string    `gorm:"size:10;not null;uniqueIndex:ux_hidden_hour" json:"date"`
	TimeSlot string    `gorm:"size:8;not null;uniqueIndex:ux_hidden_hour" json:"time_slot"`

	CreatedBy     uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedByRole string    `gorm:"size:20" json:"created_by_role"`

	CreatedAt time.Time `json:"created_at"`
}
