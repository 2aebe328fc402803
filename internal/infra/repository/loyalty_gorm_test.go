package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
)

func TestTierCase(t *testing.T) {
	policy := loyalty.NewPolicy(config.Loyalty{
		GoldVisits:     100,
		PlatinumVisits: 200,
	})

	sql, args := tierCase(policy)

	assert.Equal(t,
		"CASE WHEN total_confirmed_visits + 1 >= ? THEN ?"+
			" WHEN total_confirmed_visits + 1 >= ? THEN ?"+
			" WHEN total_confirmed_visits + 1 >= ? THEN ? ELSE ? END",
		sql,
	)
	assert.Equal(t, []any{
		200, "platinum",
		100, "gold",
		0, "silver",
		"silver",
	}, args)
}
