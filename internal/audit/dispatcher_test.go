package audit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	store := memstore.New()
	d := audit.NewDispatcher(audit.New(store))

	actor := uuid.New()
	booking := uuid.New()

	d.Dispatch(audit.Event{
		ActorID:   &actor,
		ActorRole: models.RoleCustomer,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &booking,
		Metadata:  map[string]any{"time_slot": "10:00 AM"},
	})
	d.Dispatch(audit.Event{
		ActorID:   &actor,
		ActorRole: models.RoleCustomer,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &booking,
	})
	d.Close()

	logs, total, err := store.ListAuditLogs(context.Background(), audit.Filter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, "booking_cancelled", logs[0].Action)
	assert.Equal(t, "booking_created", logs[1].Action)
	assert.JSONEq(t, `{"time_slot":"10:00 AM"}`, logs[1].Metadata)
	assert.Empty(t, logs[0].Metadata)
}

func TestListAuditLogsFilterAndPaging(t *testing.T) {
	store := memstore.New()
	logger := audit.New(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, logger.Log(ctx, nil, models.RoleAdmin, "roster_published", "roster", nil, nil))
	}
	require.NoError(t, logger.Log(ctx, nil, models.RoleBarber, "hidden_hours_updated", "barber", nil, nil))

	logs, total, err := store.ListAuditLogs(ctx, audit.Filter{Action: "roster_published", Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, logs, 1)

	logs, total, err = store.ListAuditLogs(ctx, audit.Filter{Entity: "barber", Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "hidden_hours_updated", logs[0].Action)
}

func TestDispatcherDropsAfterClose(t *testing.T) {
	store := memstore.New()
	d := audit.NewDispatcher(audit.New(store))
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(audit.Event{ActorRole: models.RoleBarber, Action: "booking_completed", Entity: "booking"})
		d.Close()
	})

	_, total, err := store.ListAuditLogs(context.Background(), audit.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
