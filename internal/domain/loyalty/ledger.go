package loyalty

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ErrInsufficientPoints is returned by Debit when the balance cannot cover
// the amount. The balance is left untouched.
var ErrInsufficientPoints = errors.New("loyalty: insufficient points")

// Ledger is the only writer of loyalty accounts. Every mutation is a single
// atomic statement against the stored balance.
type Ledger interface {
	GetOrCreate(ctx context.Context, customerID uuid.UUID) (*models.LoyaltyAccount, error)

	Debit(ctx context.Context, customerID uuid.UUID, points int) error

	// Penalize subtracts points, flooring the balance at zero.
	Penalize(ctx context.Context, customerID uuid.UUID, points int) error

	// RecordVisit adds one visit and credits points in one step, then
	// re-derives the tier from the new visit count.
	RecordVisit(ctx context.Context, customerID uuid.UUID, points int, policy Policy) error
}
