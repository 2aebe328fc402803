package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type LoyaltyGormLedger struct {
	db *gorm.DB
}

func NewLoyaltyGormLedger(db *gorm.DB) *LoyaltyGormLedger {
	return &LoyaltyGormLedger{db: db}
}

func (l *LoyaltyGormLedger) ensure(ctx context.Context, customerID uuid.UUID) error {
	acc := models.LoyaltyAccount{
		CustomerID: customerID,
		StatusTier: string(loyalty.TierSilver),
	}
	if err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&acc).Error; err != nil {
		return fmt.Errorf("ensure loyalty account: %w", err)
	}
	return nil
}

func (l *LoyaltyGormLedger) GetOrCreate(
	ctx context.Context,
	customerID uuid.UUID,
) (*models.LoyaltyAccount, error) {

	if err := l.ensure(ctx, customerID); err != nil {
		return nil, err
	}

	var acc models.LoyaltyAccount
	if err := l.db.WithContext(ctx).
		First(&acc, "customer_id = ?", customerID).Error; err != nil {
		return nil, fmt.Errorf("get loyalty account: %w", err)
	}
	return &acc, nil
}

func (l *LoyaltyGormLedger) Debit(
	ctx context.Context,
	customerID uuid.UUID,
	points int,
) error {

	if err := l.ensure(ctx, customerID); err != nil {
		return err
	}

	res := l.db.WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("customer_id = ? AND redeemable_points >= ?", customerID, points).
		Update("redeemable_points", gorm.Expr("redeemable_points - ?", points))
	if res.Error != nil {
		return fmt.Errorf("debit points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return loyalty.ErrInsufficientPoints
	}
	return nil
}

func (l *LoyaltyGormLedger) Penalize(
	ctx context.Context,
	customerID uuid.UUID,
	points int,
) error {

	if points <= 0 {
		return nil
	}
	if err := l.ensure(ctx, customerID); err != nil {
		return err
	}

	if err := l.db.WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("customer_id = ?", customerID).
		Update("redeemable_points", gorm.Expr("GREATEST(redeemable_points - ?, 0)", points)).
		Error; err != nil {
		return fmt.Errorf("penalize points: %w", err)
	}
	return nil
}

func (l *LoyaltyGormLedger) RecordVisit(
	ctx context.Context,
	customerID uuid.UUID,
	points int,
	policy loyalty.Policy,
) error {

	if err := l.ensure(ctx, customerID); err != nil {
		return err
	}

	tierSQL, tierArgs := tierCase(policy)

	if err := l.db.WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("customer_id = ?", customerID).
		Updates(map[string]any{
			"redeemable_points":      gorm.Expr("redeemable_points + ?", points),
			"total_confirmed_visits": gorm.Expr("total_confirmed_visits + 1"),
			"status_tier":            gorm.Expr(tierSQL, tierArgs...),
		}).Error; err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// tierCase builds a CASE over the post-increment visit count so the tier is
// derived in the same statement that bumps the counter.
func tierCase(policy loyalty.Policy) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(policy.Rules)*2)

	b.WriteString("CASE")
	for i := len(policy.Rules) - 1; i >= 0; i-- {
		r := policy.Rules[i]
		b.WriteString(" WHEN total_confirmed_visits + 1 >= ? THEN ?")
		args = append(args, r.MinVisits, string(r.Tier))
	}
	b.WriteString(" ELSE ? END")
	args = append(args, string(loyalty.TierSilver))

	return b.String(), args
}

var _ loyalty.Ledger = (*LoyaltyGormLedger)(nil)
