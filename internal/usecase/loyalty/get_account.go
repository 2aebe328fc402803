package loyalty

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AccountView struct {
	models.LoyaltyAccount

	PointsPerVisit int    `json:"points_per_visit"`
	NextTier       string `json:"next_tier,omitempty"`
	VisitsToNext   int    `json:"visits_to_next,omitempty"`
}

type GetAccount struct {
	ledger loyalty.Ledger
	policy loyalty.Policy
}

func NewGetAccount(ledger loyalty.Ledger, policy loyalty.Policy) *GetAccount {
	return &GetAccount{ledger: ledger, policy: policy}
}

func (uc *GetAccount) Execute(ctx context.Context, customerID uuid.UUID) (*AccountView, error) {
	if customerID == uuid.Nil {
		return nil, httperr.Validation("invalid_customer_id", "customer id is required")
	}

	acc, err := uc.ledger.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	view := &AccountView{
		LoyaltyAccount: *acc,
		PointsPerVisit: uc.policy.PointsFor(loyalty.Tier(acc.StatusTier)),
	}

	for _, r := range uc.policy.Rules {
		if r.MinVisits > acc.TotalConfirmedVisits {
			view.NextTier = string(r.Tier)
			view.VisitsToNext = r.MinVisits - acc.TotalConfirmedVisits
			break
		}
	}

	return view, nil
}
