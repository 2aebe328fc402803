package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ActiveSlotIndex enforces one confirmed/completed booking per slot.
const ActiveSlotIndex = "ux_bookings_active_slot"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

func (r *BookingGormRepository) Ledger() loyalty.Ledger {
	return NewLoyaltyGormLedger(r.db)
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return getUser(ctx, r.db, id)
}

func getUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetRosterAssignment(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) (*models.RosterAssignment, *models.Roster, error) {

	var assignment models.RosterAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN rosters ON rosters.id = roster_assignments.roster_id").
		Where(
			"roster_assignments.barber_id = ? AND roster_assignments.date = ? AND rosters.start_date <= ? AND rosters.end_date >= ?",
			barberID, date, date, date,
		).
		Order("rosters.published_at DESC").
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get roster assignment: %w", err)
	}

	var roster models.Roster
	if err := r.db.WithContext(ctx).
		First(&roster, "id = ?", assignment.RosterID).Error; err != nil {
		return nil, nil, fmt.Errorf("get roster: %w", err)
	}

	return &assignment, &roster, nil
}

func (r *BookingGormRepository) ListHiddenHours(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.HiddenHour, error) {
	return listHiddenHours(ctx, r.db, barberID, date)
}

func listHiddenHours(
	ctx context.Context,
	db *gorm.DB,
	barberID uuid.UUID,
	date string,
) ([]models.HiddenHour, error) {

	var hours []models.HiddenHour
	if err := db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("time_slot ASC").
		Find(&hours).Error; err != nil {
		return nil, fmt.Errorf("list hidden hours: %w", err)
	}
	return hours, nil
}

func (r *BookingGormRepository) ListOccupiedSlots(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {

	var slots []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"barber_id = ? AND date = ? AND status IN ?",
			barberID, date, activeStatuses(),
		).
		Pluck("time_slot", &slots).Error; err != nil {
		return nil, fmt.Errorf("list occupied slots: %w", err)
	}
	return slots, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	ids []uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}
	return services, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if httperr.IsConstraint(err, ActiveSlotIndex) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *BookingGormRepository) TransitionBooking(
	ctx context.Context,
	id uuid.UUID,
	from domain.Status,
	t domain.Transition,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(t.Columns())
	if res.Error != nil {
		return false, fmt.Errorf("transition booking: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForCustomer(
	ctx context.Context,
	customerID uuid.UUID,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForBarber(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list barber bookings: %w", err)
	}
	return bookings, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
