package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	GetUser(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)

	// CreateRoster stores a roster and its assignments atomically.
	CreateRoster(
		ctx context.Context,
		r *models.Roster,
	) error

	// ReplaceHiddenHours swaps the whole hidden set of a barber's day.
	ReplaceHiddenHours(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
		hours []models.HiddenHour,
	) error

	ListHiddenHours(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]models.HiddenHour, error)
}
