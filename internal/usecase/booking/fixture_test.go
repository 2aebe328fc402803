package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

// Monday 2026-03-02, 08:00 shop time. The barber works 09:00-17:00 on
// the 3rd, which is the day most tests book.
const bookingDay = "2026-03-03"

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Type)
	}
	return out
}

type fixture struct {
	t        *testing.T
	store    *memstore.Store
	settings Settings
	now      time.Time
	audit    *audit.Dispatcher
	notes    *recordingNotifier

	barber      models.User
	otherBarber models.User
	customer    models.User
	other       models.User
	admin       models.User

	haircut models.Service
	beard   models.Service
	free    models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	f := &fixture{
		t:     t,
		store: store,
		now:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		notes: &recordingNotifier{},
		settings: Settings{
			Location:         time.UTC,
			Grid:             domain.DefaultGrid(),
			MinAdvance:       time.Hour,
			LateCancelCutoff: 2 * time.Hour,
			Policy: loyalty.NewPolicy(config.Loyalty{
				GoldVisits:       100,
				PlatinumVisits:   200,
				PointsSilver:     10,
				PointsGold:       15,
				PointsPlatinum:   20,
				LateCancelPoints: 10,
				NoShowPoints:     25,
			}),
		},
		barber:      models.User{ID: uuid.New(), Name: "Rui", Role: models.RoleBarber, Active: true},
		otherBarber: models.User{ID: uuid.New(), Name: "Leo", Role: models.RoleBarber, Active: true},
		customer:    models.User{ID: uuid.New(), Name: "Ana", Role: models.RoleCustomer, Active: true},
		other:       models.User{ID: uuid.New(), Name: "Bia", Role: models.RoleCustomer, Active: true},
		admin:       models.User{ID: uuid.New(), Name: "Root", Role: models.RoleAdmin, Active: true},
		haircut:     models.Service{ID: uuid.New(), Name: "Haircut", Price: 50, DurationMin: 60, Active: true},
		beard:       models.Service{ID: uuid.New(), Name: "Beard", Price: 30, DurationMin: 30, Active: true},
		free: models.Service{
			ID: uuid.New(), Name: "Wash", Price: 20, DurationMin: 15, Active: true,
			IsRedeemable: true, RedemptionPoints: 80,
		},
	}

	for _, u := range []models.User{f.barber, f.otherBarber, f.customer, f.other, f.admin} {
		store.AddUser(u)
	}
	for _, s := range []models.Service{f.haircut, f.beard, f.free} {
		store.AddService(s)
	}

	f.audit = audit.NewDispatcher(audit.New(store))
	t.Cleanup(f.audit.Close)

	f.publishShift(f.barber.ID, bookingDay, "09:00", "17:00")
	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) publishShift(barberID uuid.UUID, date, from, to string) {
	f.t.Helper()

	rosterID := uuid.New()
	err := f.store.CreateRoster(context.Background(), &models.Roster{
		ID:          rosterID,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-08",
		PublishedAt: f.now,
		PublishedBy: f.admin.ID,
		Assignments: []models.RosterAssignment{{
			ID:        uuid.New(),
			RosterID:  rosterID,
			BarberID:  barberID,
			Date:      date,
			StartTime: from,
			EndTime:   to,
		}},
	})
	require.NoError(f.t, err)
}

func (f *fixture) as(u models.User) identity.Actor {
	return identity.Actor{UserID: u.ID, Role: u.Role}
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.store, f.settings, f.clock)
}

func (f *fixture) creator() *CreateBooking {
	return NewCreateBooking(f.store, f.settings, f.clock, f.audit, f.notes)
}

func (f *fixture) canceller() *CancelBooking {
	return NewCancelBooking(f.store, f.settings, f.clock, f.audit, f.notes)
}

func (f *fixture) completer() *CompleteBooking {
	return NewCompleteBooking(f.store, f.settings, f.clock, f.audit, f.notes)
}

func (f *fixture) noShower() *MarkNoShow {
	return NewMarkNoShow(f.store, f.settings, f.clock, f.audit, f.notes)
}

func (f *fixture) book(customer models.User, slot string) *models.Booking {
	f.t.Helper()

	b, err := f.creator().Execute(context.Background(), CreateBookingInput{
		Actor:      f.as(customer),
		BarberID:   f.barber.ID,
		Date:       bookingDay,
		TimeSlot:   slot,
		ServiceIDs: []uuid.UUID{f.haircut.ID},
	})
	require.NoError(f.t, err)
	return b
}

func (f *fixture) balance(customerID uuid.UUID) int {
	acc, _ := f.store.Account(customerID)
	return acc.RedeemablePoints
}

func (f *fixture) status(id uuid.UUID) string {
	f.t.Helper()
	b, err := f.store.GetBooking(context.Background(), id)
	require.NoError(f.t, err)
	return b.Status
}
