package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	DurationMin int       `json:"duration_min"`
	Price       float64   `json:"price"`
	Active      bool      `gorm:"default:true" json:"active"`

	IsRedeemable     bool `gorm:"default:false" json:"is_redeemable"`
	RedemptionPoints int  `gorm:"default:0" json:"redemption_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
