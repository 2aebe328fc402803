package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *ScheduleGormRepository) CreateRoster(
	ctx context.Context,
	roster *models.Roster,
) error {
	// Create cascades into the Assignments association inside one tx.
	if err := r.db.WithContext(ctx).Create(roster).Error; err != nil {
		return fmt.Errorf("create roster: %w", err)
	}
	return nil
}

func (r *ScheduleGormRepository) ReplaceHiddenHours(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
	hours []models.HiddenHour,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ? AND date = ?", barberID, date).
			Delete(&models.HiddenHour{}).Error; err != nil {
			return fmt.Errorf("clear hidden hours: %w", err)
		}

		if len(hours) == 0 {
			return nil
		}

		if err := tx.Create(&hours).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.Conflict("hidden_hours_conflict", "hidden hours were changed concurrently, retry")
			}
			return fmt.Errorf("save hidden hours: %w", err)
		}
		return nil
	})
}

func (r *ScheduleGormRepository) ListHiddenHours(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.HiddenHour, error) {
	return listHiddenHours(ctx, r.db, barberID, date)
}

var _ schedule.Repository = (*ScheduleGormRepository)(nil)
