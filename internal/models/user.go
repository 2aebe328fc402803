package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
	RoleAdmin    = "admin"
)

// User mirrors an identity-provider account; ids come from the provider.
type User struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string    `gorm:"size:100;not null" json:"name"`
	Email  string    `gorm:"size:100;uniqueIndex" json:"email"`
	Phone  string    `gorm:"size:20" json:"phone"`
	Role   string    `gorm:"size:20;default:'customer';index" json:"role"`
	Active bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
