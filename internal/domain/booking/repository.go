package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)

	// -------- Availability --------
	// GetRosterAssignment returns the assignment of the most recently
	// published roster covering (barberID, date), or nils when none exists.
	GetRosterAssignment(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) (*models.RosterAssignment, *models.Roster, error)

	ListHiddenHours(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]models.HiddenHour, error)

	ListOccupiedSlots(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]string, error)

	// -------- Services --------
	GetServices(
		ctx context.Context,
		ids []uuid.UUID,
	) ([]models.Service, error)

	// -------- Booking (create / state change) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	// TransitionBooking applies t only if the booking is still in from.
	TransitionBooking(
		ctx context.Context,
		id uuid.UUID,
		from Status,
		t Transition,
	) (bool, error)

	// -------- Listings --------
	ListBookingsForCustomer(
		ctx context.Context,
		customerID uuid.UUID,
	) ([]models.Booking, error)

	ListBookingsForBarber(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]models.Booking, error)

	// -------- Loyalty --------
	Ledger() loyalty.Ledger
}
