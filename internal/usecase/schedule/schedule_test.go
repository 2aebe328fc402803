package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fixture struct {
	store    *memstore.Store
	dispatch *audit.Dispatcher
	now      time.Time

	admin    identity.Actor
	barber   identity.Actor
	other    identity.Actor
	customer identity.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	f := &fixture{
		store:    store,
		now:      time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		admin:    identity.Actor{UserID: uuid.New(), Role: models.RoleAdmin},
		barber:   identity.Actor{UserID: uuid.New(), Role: models.RoleBarber},
		other:    identity.Actor{UserID: uuid.New(), Role: models.RoleBarber},
		customer: identity.Actor{UserID: uuid.New(), Role: models.RoleCustomer},
	}

	for _, a := range []identity.Actor{f.admin, f.barber, f.other, f.customer} {
		store.AddUser(models.User{ID: a.UserID, Name: a.Role, Role: a.Role, Active: true})
	}

	f.dispatch = audit.NewDispatcher(audit.New(store))
	t.Cleanup(f.dispatch.Close)
	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) publisher() *PublishRoster {
	return NewPublishRoster(f.store, time.UTC, f.clock, f.dispatch)
}

func (f *fixture) hidden() *HiddenHours {
	return NewHiddenHours(f.store, time.UTC, domain.DefaultGrid(), f.clock, f.dispatch)
}

func (f *fixture) rosterInput() PublishRosterInput {
	return PublishRosterInput{
		Actor:     f.admin,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
		Assignments: []AssignmentInput{
			{BarberID: f.barber.UserID, Date: "2026-03-03", StartTime: "09:00", EndTime: "17:00"},
			{BarberID: f.barber.UserID, Date: "2026-03-04", IsDayOff: true},
			{BarberID: f.other.UserID, Date: "2026-03-03", StartTime: "12:00", EndTime: "18:00"},
		},
	}
}

// ======================================================
// PUBLISH ROSTER
// ======================================================

func TestPublishRoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roster, err := f.publisher().Execute(ctx, f.rosterInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, roster.ID)
	assert.Equal(t, f.now, roster.PublishedAt)
	assert.Equal(t, f.admin.UserID, roster.PublishedBy)
	require.Len(t, roster.Assignments, 3)

	a, r, err := f.store.GetRosterAssignment(ctx, f.barber.UserID, "2026-03-03")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, roster.ID, r.ID)
	assert.Equal(t, "09:00", a.StartTime)

	off, _, err := f.store.GetRosterAssignment(ctx, f.barber.UserID, "2026-03-04")
	require.NoError(t, err)
	require.NotNil(t, off)
	assert.True(t, off.IsDayOff)
}

func TestPublishRoster_Rejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		mutate   func(in *PublishRosterInput)
		wantCode string
	}{
		{name: "barber cannot publish", mutate: func(in *PublishRosterInput) { in.Actor = f.barber }, wantCode: "admins_only"},
		{name: "unknown barber", mutate: func(in *PublishRosterInput) {
			in.Assignments[0].BarberID = uuid.New()
		}, wantCode: "barber_not_found"},
		{name: "customer assigned", mutate: func(in *PublishRosterInput) {
			in.Assignments[0].BarberID = f.customer.UserID
		}, wantCode: "barber_not_found"},
		{name: "duplicate day", mutate: func(in *PublishRosterInput) {
			in.Assignments[1].Date = "2026-03-03"
		}, wantCode: "duplicate_assignment"},
		{name: "out of range", mutate: func(in *PublishRosterInput) {
			in.Assignments[2].Date = "2026-03-10"
		}, wantCode: "assignment_out_of_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.rosterInput()
			tt.mutate(&in)

			_, err := f.publisher().Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
		})
	}
}

// ======================================================
// HIDDEN HOURS
// ======================================================

func TestHiddenHours_SetAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	slots, err := f.hidden().Set(ctx, f.barber, f.barber.UserID, "2026-03-03",
		[]string{"03:00 pm", "10:00 AM", "10:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "03:00 PM"}, slots)

	listed, err := f.hidden().List(ctx, f.barber.UserID, "2026-03-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "03:00 PM"}, listed)

	stored, err := f.store.ListHiddenHours(ctx, f.barber.UserID, "2026-03-03")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, models.RoleBarber, stored[0].CreatedByRole)
}

func TestHiddenHours_ReplaceAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.hidden().Set(ctx, f.barber, f.barber.UserID, "2026-03-03", []string{"10:00 AM", "11:00 AM"})
	require.NoError(t, err)

	_, err = f.hidden().Set(ctx, f.admin, f.barber.UserID, "2026-03-03", []string{"04:00 PM"})
	require.NoError(t, err)

	stored, err := f.store.ListHiddenHours(ctx, f.barber.UserID, "2026-03-03")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "04:00 PM", stored[0].TimeSlot)
	assert.Equal(t, models.RoleAdmin, stored[0].CreatedByRole)

	_, err = f.hidden().Set(ctx, f.barber, f.barber.UserID, "2026-03-03", nil)
	require.NoError(t, err)

	listed, err := f.hidden().List(ctx, f.barber.UserID, "2026-03-03")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestHiddenHours_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.hidden().Set(ctx, f.other, f.barber.UserID, "2026-03-03", []string{"10:00 AM"})
	assert.True(t, httperr.IsBusiness(err, "not_your_hours"))

	_, err = f.hidden().Set(ctx, f.customer, f.barber.UserID, "2026-03-03", []string{"10:00 AM"})
	assert.True(t, httperr.IsKind(err, httperr.KindAuthorization))

	_, err = f.hidden().Set(ctx, f.barber, f.barber.UserID, "2026-03-01", []string{"10:00 AM"})
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))

	_, err = f.hidden().Set(ctx, f.barber, f.barber.UserID, "2026-03-03", []string{"10:30 AM"})
	assert.True(t, httperr.IsBusiness(err, "invalid_time_slot"))

	_, err = f.hidden().Set(ctx, f.barber, f.barber.UserID, "2026-03-03", []string{"07:00 PM"})
	assert.True(t, httperr.IsBusiness(err, "invalid_time_slot"))

	_, err = f.hidden().Set(ctx, f.admin, f.customer.UserID, "2026-03-03", []string{"10:00 AM"})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}
