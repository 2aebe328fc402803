package models

import (
	"time"

	"github.com/google/uuid"
)

// Roster is an admin-published weekly shift schedule. Rows are never
// updated after publication; a newer roster supersedes overlapping dates.
type Roster struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StartDate   string    `gorm:"size:10;not null;index" json:"start_date"`
	EndDate     string    `gorm:"size:10;not null;index" json:"end_date"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`
	PublishedBy uuid.UUID `gorm:"type:uuid" json:"published_by"`

	Assignments []RosterAssignment `gorm:"constraint:OnDelete:CASCADE;" json:"assignments"`

	CreatedAt time.Time `json:"created_at"`
}

type RosterAssignment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RosterID uuid.UUID `gorm:"type:uuid;not null;index" json:"roster_id"`
	BarberID uuid.UUID `gorm:"type:uuid;not null;index:idx_assignment_barber_date" json:"barber_id"`
	Date     string    `gorm:"size:10;not null;index:idx_assignment_barber_date" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsDayOff  bool   `gorm:"default:false" json:"is_day_off"`
}
