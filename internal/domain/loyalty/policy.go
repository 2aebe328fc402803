package loyalty

import (
	"sort"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

type Tier string

const (
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

type TierRule struct {
	Tier           Tier
	MinVisits      int
	PointsPerVisit int
}

// Policy holds tier thresholds and penalty sizes.
type Policy struct {
	// Rules sorted by MinVisits ascending; the first rule starts at zero.
	Rules []TierRule

	LateCancelPenalty int
	NoShowPenalty     int
}

func NewPolicy(cfg config.Loyalty) Policy {
	rules := []TierRule{
		{Tier: TierSilver, MinVisits: 0, PointsPerVisit: cfg.PointsSilver},
		{Tier: TierGold, MinVisits: cfg.GoldVisits, PointsPerVisit: cfg.PointsGold},
		{Tier: TierPlatinum, MinVisits: cfg.PlatinumVisits, PointsPerVisit: cfg.PointsPlatinum},
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].MinVisits < rules[j].MinVisits
	})

	return Policy{
		Rules:             rules,
		LateCancelPenalty: cfg.LateCancelPoints,
		NoShowPenalty:     cfg.NoShowPoints,
	}
}

func (p Policy) TierFor(visits int) Tier {
	tier := TierSilver
	for _, r := range p.Rules {
		if visits >= r.MinVisits {
			tier = r.Tier
		}
	}
	return tier
}

// PointsFor returns the per-visit credit for tier; unknown tiers earn the
// base rate.
func (p Policy) PointsFor(tier Tier) int {
	for _, r := range p.Rules {
		if r.Tier == tier {
			return r.PointsPerVisit
		}
	}
	if len(p.Rules) > 0 {
		return p.Rules[0].PointsPerVisit
	}
	return 0
}
