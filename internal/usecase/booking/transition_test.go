package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

// ======================================================
// CANCEL
// ======================================================

func TestCancelBooking_CustomerOwnBooking(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 40, StatusTier: "silver"})

	b := f.book(f.customer, "10:00 AM")

	// Customer cancels inside the late window: no penalty.
	f.now = time.Date(2026, 3, 3, 9, 30, 0, 0, time.UTC)

	got, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.customer), "changed plans")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.Equal(t, "changed plans", got.CancelReason)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, f.customer.ID, *got.CancelledBy)
	assert.Equal(t, 40, f.balance(f.customer.ID))
	assert.Equal(t, string(domain.StatusCancelled), f.status(b.ID))
	assert.Equal(t, []string{notify.TypeBookingCreated, notify.TypeBookingCancelled}, f.notes.types())
}

func TestCancelBooking_Authorization(t *testing.T) {
	f := newFixture(t)
	b := f.book(f.customer, "10:00 AM")

	_, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.other), "")
	assert.True(t, httperr.IsKind(err, httperr.KindAuthorization))

	_, err = f.canceller().Execute(context.Background(), b.ID, f.as(f.otherBarber), "")
	assert.True(t, httperr.IsKind(err, httperr.KindAuthorization))

	assert.Equal(t, string(domain.StatusConfirmed), f.status(b.ID))
}

func TestCancelBooking_LateByStaffPenalizes(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 40, StatusTier: "silver"})

	b := f.book(f.customer, "02:00 PM")
	f.now = time.Date(2026, 3, 3, 12, 30, 0, 0, time.UTC)

	_, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.barber), "barber sick")
	require.NoError(t, err)
	assert.Equal(t, 30, f.balance(f.customer.ID))
}

func TestCancelBooking_EarlyByStaffNoPenalty(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 40, StatusTier: "silver"})

	b := f.book(f.customer, "02:00 PM")

	_, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.admin), "")
	require.NoError(t, err)
	assert.Equal(t, 40, f.balance(f.customer.ID))
}

func TestCancelBooking_PenaltyFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 5, StatusTier: "silver"})

	b := f.book(f.customer, "02:00 PM")
	f.now = time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC)

	_, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.barber), "")
	require.NoError(t, err)
	assert.Equal(t, 0, f.balance(f.customer.ID))
}

func TestCancelBooking_RepeatIsNoop(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 40, StatusTier: "silver"})

	b := f.book(f.customer, "02:00 PM")
	f.now = time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC)

	_, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.barber), "")
	require.NoError(t, err)

	again, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.barber), "")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), again.Status)

	assert.Equal(t, 30, f.balance(f.customer.ID))
	assert.Equal(t, []string{notify.TypeBookingCreated, notify.TypeBookingCancelled}, f.notes.types())
}

func TestCancelBooking_ConcurrentCancelsPenalizeOnce(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 100, StatusTier: "silver"})

	b := f.book(f.customer, "02:00 PM")
	f.now = time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC)
	uc := f.canceller()

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), b.ID, f.as(f.admin), "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 90, f.balance(f.customer.ID))
}

func TestCancelBooking_CompletedIsInvalid(t *testing.T) {
	f := newFixture(t)

	b := f.book(f.customer, "10:00 AM")
	f.now = time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC)

	_, err := f.completer().Execute(context.Background(), b.ID, f.as(f.barber))
	require.NoError(t, err)

	_, err = f.canceller().Execute(context.Background(), b.ID, f.as(f.customer), "")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	assert.Equal(t, string(domain.StatusCompleted), f.status(b.ID))
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.canceller().Execute(context.Background(), uuid.New(), f.as(f.admin), "")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

// ======================================================
// COMPLETE
// ======================================================

func TestCompleteBooking_CreditsPoints(t *testing.T) {
	f := newFixture(t)

	b := f.book(f.customer, "10:00 AM")
	f.now = time.Date(2026, 3, 3, 10, 45, 0, 0, time.UTC)

	got, err := f.completer().Execute(context.Background(), b.ID, f.as(f.barber))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	require.NotNil(t, got.CompletedAt)

	acc, ok := f.store.Account(f.customer.ID)
	require.True(t, ok)
	assert.Equal(t, 10, acc.RedeemablePoints)
	assert.Equal(t, 1, acc.TotalConfirmedVisits)
	assert.Equal(t, "silver", acc.StatusTier)

	// The completed booking keeps holding its slot.
	slots, err := f.availability().Execute(context.Background(), f.barber.ID, bookingDay)
	require.NoError(t, err)
	assert.NotContains(t, slots, "10:00 AM")
}

func TestCompleteBooking_PromotionUsesPreVisitTier(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{
		CustomerID:           f.customer.ID,
		RedeemablePoints:     7,
		StatusTier:           "silver",
		TotalConfirmedVisits: 99,
	})

	b := f.book(f.customer, "10:00 AM")
	f.now = time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)

	_, err := f.completer().Execute(context.Background(), b.ID, f.as(f.admin))
	require.NoError(t, err)

	acc, _ := f.store.Account(f.customer.ID)
	assert.Equal(t, 17, acc.RedeemablePoints)
	assert.Equal(t, 100, acc.TotalConfirmedVisits)
	assert.Equal(t, "gold", acc.StatusTier)
}

func TestCompleteBooking_RepeatCreditsOnce(t *testing.T) {
	f := newFixture(t)

	b := f.book(f.customer, "10:00 AM")
	f.now = time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := f.completer().Execute(context.Background(), b.ID, f.as(f.barber))
		require.NoError(t, err)
	}

	acc, _ := f.store.Account(f.customer.ID)
	assert.Equal(t, 10, acc.RedeemablePoints)
	assert.Equal(t, 1, acc.TotalConfirmedVisits)
}

func TestCompleteBooking_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(f.customer, "10:00 AM")

	_, err := f.completer().Execute(ctx, b.ID, f.as(f.barber))
	assert.True(t, httperr.IsBusiness(err, "booking_not_started"))

	f.now = time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)

	_, err = f.completer().Execute(ctx, b.ID, f.as(f.customer))
	assert.True(t, httperr.IsBusiness(err, "staff_only"))

	_, err = f.completer().Execute(ctx, b.ID, f.as(f.otherBarber))
	assert.True(t, httperr.IsBusiness(err, "not_your_booking"))

	assert.Equal(t, string(domain.StatusConfirmed), f.status(b.ID))
}

func TestCompleteBooking_CancelledIsInvalid(t *testing.T) {
	f := newFixture(t)

	b := f.book(f.customer, "10:00 AM")
	_, err := f.canceller().Execute(context.Background(), b.ID, f.as(f.customer), "")
	require.NoError(t, err)

	f.now = time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)
	_, err = f.completer().Execute(context.Background(), b.ID, f.as(f.barber))
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

// ======================================================
// NO-SHOW
// ======================================================

func TestMarkNoShow_Penalizes(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccount(models.LoyaltyAccount{CustomerID: f.customer.ID, RedeemablePoints: 60, StatusTier: "silver", TotalConfirmedVisits: 4})

	b := f.book(f.customer, "10:00 AM")
	f.now = time.Date(2026, 3, 3, 10, 20, 0, 0, time.UTC)

	got, err := f.noShower().Execute(context.Background(), b.ID, f.as(f.barber))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), got.Status)

	acc, _ := f.store.Account(f.customer.ID)
	assert.Equal(t, 35, acc.RedeemablePoints)
	assert.Equal(t, 4, acc.TotalConfirmedVisits)

	// Repeat is a no-op.
	_, err = f.noShower().Execute(context.Background(), b.ID, f.as(f.barber))
	require.NoError(t, err)
	acc, _ = f.store.Account(f.customer.ID)
	assert.Equal(t, 35, acc.RedeemablePoints)

	// No-show frees the slot.
	f.now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	slots, err := f.availability().Execute(context.Background(), f.barber.ID, bookingDay)
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00 AM")
}

func TestMarkNoShow_FloorsAtZero(t *testing.T) {
	f := newFixture(t)

	b := f.book(f.customer, "10:00 AM")
	f.now = time.Date(2026, 3, 3, 10, 20, 0, 0, time.UTC)

	_, err := f.noShower().Execute(context.Background(), b.ID, f.as(f.admin))
	require.NoError(t, err)
	assert.Equal(t, 0, f.balance(f.customer.ID))
}

func TestMarkNoShow_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(f.customer, "10:00 AM")

	_, err := f.noShower().Execute(ctx, b.ID, f.as(f.barber))
	assert.True(t, httperr.IsBusiness(err, "booking_not_started"))

	f.now = time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)

	_, err = f.noShower().Execute(ctx, b.ID, f.as(f.customer))
	assert.True(t, httperr.IsKind(err, httperr.KindAuthorization))

	_, err = f.completer().Execute(ctx, b.ID, f.as(f.barber))
	require.NoError(t, err)

	_, err = f.noShower().Execute(ctx, b.ID, f.as(f.barber))
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

// ======================================================
// LISTINGS
// ======================================================

func TestListBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(f.customer, "03:00 PM")
	f.book(f.other, "09:00 AM")
	f.book(f.customer, "11:00 AM")

	mine, err := NewListCustomerBookings(f.store).Execute(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	sheet, err := NewListBarberBookings(f.store, f.settings).Execute(ctx, f.barber.ID, bookingDay)
	require.NoError(t, err)
	require.Len(t, sheet, 3)
	assert.Equal(t, "09:00 AM", sheet[0].TimeSlot)
	assert.Equal(t, "11:00 AM", sheet[1].TimeSlot)
	assert.Equal(t, "03:00 PM", sheet[2].TimeSlot)

	empty, err := NewListBarberBookings(f.store, f.settings).Execute(ctx, f.otherBarber.ID, bookingDay)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
