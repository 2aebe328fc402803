package booking

import (
	"context"
	"sort"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID uuid.UUID,
) ([]models.Booking, error) {

	bookings, err := uc.repo.ListBookingsForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

type ListBarberBookings struct {
	repo     domain.Repository
	settings Settings
}

func NewListBarberBookings(repo domain.Repository, settings Settings) *ListBarberBookings {
	return &ListBarberBookings{repo: repo, settings: settings}
}

// Execute returns the barber's day sheet ordered by slot.
func (uc *ListBarberBookings) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.Booking, error) {

	day, err := domain.ParseDate(date, uc.settings.Location)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListBookingsForBarber(ctx, barberID, day.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		hi, _ := domain.ParseSlot(bookings[i].TimeSlot)
		hj, _ := domain.ParseSlot(bookings[j].TimeSlot)
		return hi < hj
	})

	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
