package models

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyAccount is written only by the loyalty ledger.
type LoyaltyAccount struct {
	CustomerID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"customer_id"`
	RedeemablePoints     int       `gorm:"not null;default:0;check:chk_loyalty_points_non_negative,redeemable_points >= 0" json:"redeemable_points"`
	StatusTier           string    `gorm:"size:20;not null;default:'silver'" json:"status_tier"`
	TotalConfirmedVisits int       `gorm:"not null;default:0" json:"total_confirmed_visits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
