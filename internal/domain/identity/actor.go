package identity

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Actor is the caller identity handed over by the identity provider.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsCustomer() bool { return a.Role == models.RoleCustomer }
func (a Actor) IsBarber() bool   { return a.Role == models.RoleBarber }
func (a Actor) IsAdmin() bool    { return a.Role == models.RoleAdmin }

// IsStaff covers the roles allowed to run chair-side transitions.
func (a Actor) IsStaff() bool { return a.IsBarber() || a.IsAdmin() }

func ValidRole(role string) bool {
	switch role {
	case models.RoleCustomer, models.RoleBarber, models.RoleAdmin:
		return true
	}
	return false
}
