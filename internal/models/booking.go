package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID   uuid.UUID `gorm:"type:uuid;not null;index" json:"barber_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`

	Date     string `gorm:"size:10;not null;index" json:"date"`
	TimeSlot string `gorm:"size:8;not null" json:"time_slot"`

	ServiceIDs UUIDList `gorm:"type:text;not null" json:"service_ids"`
	TotalPrice float64  `json:"total_price"`

	Status          string `gorm:"size:20;not null;default:'confirmed';index" json:"status"`
	IsRewardBooking bool   `gorm:"default:false" json:"is_reward_booking"`
	PointsRedeemed  int    `gorm:"default:0" json:"points_redeemed"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason,omitempty"`
	CancelledBy  *uuid.UUID `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UUIDList is stored as a JSON array in a text column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uuid.UUID(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *UUIDList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("uuid list: unsupported type %T", src)
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("uuid list: %w", err)
	}
	*l = ids
	return nil
}
