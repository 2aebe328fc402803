// Package memstore is an in-process implementation of the booking, schedule,
// loyalty and audit stores. It backs STORAGE_DRIVER=memory and the tests,
// and enforces the same uniqueness and balance rules as the Postgres schema.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type state struct {
	users       map[uuid.UUID]models.User
	services    map[uuid.UUID]models.Service
	rosters     map[uuid.UUID]models.Roster
	assignments []models.RosterAssignment
	hidden      []models.HiddenHour
	bookings    map[uuid.UUID]models.Booking
	accounts    map[uuid.UUID]models.LoyaltyAccount
	auditLogs   []models.AuditLog
}

func newState() *state {
	return &state{
		users:    map[uuid.UUID]models.User{},
		services: map[uuid.UUID]models.Service{},
		rosters:  map[uuid.UUID]models.Roster{},
		bookings: map[uuid.UUID]models.Booking{},
		accounts: map[uuid.UUID]models.LoyaltyAccount{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.rosters {
		c.rosters[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.assignments = append([]models.RosterAssignment(nil), s.assignments...)
	c.hidden = append([]models.HiddenHour(nil), s.hidden...)
	c.auditLogs = append([]models.AuditLog(nil), s.auditLogs...)
	return c
}

type root struct {
	mu sync.Mutex
	st *state
}

type Store struct {
	root *root
	inTx bool
}

func New() *Store {
	return &Store{root: &root{st: newState()}}
}

// lock is a no-op inside Transaction, which already holds the mutex.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.root.mu.Lock()
	return s.root.mu.Unlock
}

func (s *Store) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	if s.inTx {
		return fn(s)
	}

	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	snapshot := s.root.st.clone()
	if err := fn(&Store{root: s.root, inTx: true}); err != nil {
		s.root.st = snapshot
		return err
	}
	return nil
}

func (s *Store) Ledger() loyalty.Ledger {
	return s
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddUser(u models.User) {
	defer s.lock()()
	s.root.st.users[u.ID] = u
}

func (s *Store) AddService(svc models.Service) {
	defer s.lock()()
	s.root.st.services[svc.ID] = svc
}

// SetAccount overwrites a loyalty account; used for seeding only.
func (s *Store) SetAccount(acc models.LoyaltyAccount) {
	defer s.lock()()
	s.root.st.accounts[acc.CustomerID] = acc
}

// Account returns a copy of the stored account, if any.
func (s *Store) Account(customerID uuid.UUID) (models.LoyaltyAccount, bool) {
	defer s.lock()()
	acc, ok := s.root.st.accounts[customerID]
	return acc, ok
}

func (s *Store) BookingCount() int {
	defer s.lock()()
	return len(s.root.st.bookings)
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	defer s.lock()()
	u, ok := s.root.st.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// --------------------------------------------------
// Rosters / hidden hours
// --------------------------------------------------

func (s *Store) CreateRoster(_ context.Context, r *models.Roster) error {
	defer s.lock()()

	stored := *r
	stored.Assignments = nil
	s.root.st.rosters[r.ID] = stored

	for _, a := range r.Assignments {
		a.RosterID = r.ID
		s.root.st.assignments = append(s.root.st.assignments, a)
	}
	return nil
}

func (s *Store) GetRosterAssignment(
	_ context.Context,
	barberID uuid.UUID,
	date string,
) (*models.RosterAssignment, *models.Roster, error) {
	defer s.lock()()

	var (
		bestA *models.RosterAssignment
		bestR *models.Roster
	)
	for i := range s.root.st.assignments {
		a := s.root.st.assignments[i]
		if a.BarberID != barberID || a.Date != date {
			continue
		}
		r, ok := s.root.st.rosters[a.RosterID]
		if !ok || date < r.StartDate || date > r.EndDate {
			continue
		}
		if bestR == nil || r.PublishedAt.After(bestR.PublishedAt) {
			a, r := a, r
			bestA, bestR = &a, &r
		}
	}
	return bestA, bestR, nil
}

func (s *Store) ReplaceHiddenHours(
	_ context.Context,
	barberID uuid.UUID,
	date string,
	hours []models.HiddenHour,
) error {
	defer s.lock()()

	kept := s.root.st.hidden[:0:0]
	for _, h := range s.root.st.hidden {
		if h.BarberID == barberID && h.Date == date {
			continue
		}
		kept = append(kept, h)
	}
	s.root.st.hidden = append(kept, hours...)
	return nil
}

func (s *Store) ListHiddenHours(
	_ context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.HiddenHour, error) {
	defer s.lock()()

	var out []models.HiddenHour
	for _, h := range s.root.st.hidden {
		if h.BarberID == barberID && h.Date == date {
			out = append(out, h)
		}
	}
	return out, nil
}

// --------------------------------------------------
// Services / bookings
// --------------------------------------------------

func (s *Store) GetServices(_ context.Context, ids []uuid.UUID) ([]models.Service, error) {
	defer s.lock()()

	var out []models.Service
	for _, id := range ids {
		if svc, ok := s.root.st.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *Store) ListOccupiedSlots(
	_ context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {
	defer s.lock()()

	var out []string
	for _, b := range s.root.st.bookings {
		if b.BarberID == barberID && b.Date == date && domain.Status(b.Status).Occupies() {
			out = append(out, b.TimeSlot)
		}
	}
	return out, nil
}

func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	defer s.lock()()

	for _, other := range s.root.st.bookings {
		if other.BarberID == b.BarberID &&
			other.Date == b.Date &&
			other.TimeSlot == b.TimeSlot &&
			domain.Status(other.Status).Occupies() {
			return domain.ErrSlotTaken
		}
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	s.root.st.bookings[b.ID] = *b
	return nil
}

func (s *Store) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	defer s.lock()()

	b, ok := s.root.st.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *Store) TransitionBooking(
	_ context.Context,
	id uuid.UUID,
	from domain.Status,
	t domain.Transition,
) (bool, error) {
	defer s.lock()()

	b, ok := s.root.st.bookings[id]
	if !ok || domain.Status(b.Status) != from {
		return false, nil
	}
	t.Apply(&b)
	s.root.st.bookings[id] = b
	return true, nil
}

func (s *Store) ListBookingsForCustomer(
	_ context.Context,
	customerID uuid.UUID,
) ([]models.Booking, error) {
	defer s.lock()()

	var out []models.Booking
	for _, b := range s.root.st.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListBookingsForBarber(
	_ context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.Booking, error) {
	defer s.lock()()

	var out []models.Booking
	for _, b := range s.root.st.bookings {
		if b.BarberID == barberID && b.Date == date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// --------------------------------------------------
// Loyalty ledger
// --------------------------------------------------

func (s *Store) account(customerID uuid.UUID) models.LoyaltyAccount {
	acc, ok := s.root.st.accounts[customerID]
	if !ok {
		now := time.Now()
		acc = models.LoyaltyAccount{
			CustomerID: customerID,
			StatusTier: string(loyalty.TierSilver),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		s.root.st.accounts[customerID] = acc
	}
	return acc
}

func (s *Store) GetOrCreate(_ context.Context, customerID uuid.UUID) (*models.LoyaltyAccount, error) {
	defer s.lock()()
	acc := s.account(customerID)
	return &acc, nil
}

func (s *Store) Debit(_ context.Context, customerID uuid.UUID, points int) error {
	defer s.lock()()

	acc := s.account(customerID)
	if acc.RedeemablePoints < points {
		return loyalty.ErrInsufficientPoints
	}
	acc.RedeemablePoints -= points
	acc.UpdatedAt = time.Now()
	s.root.st.accounts[customerID] = acc
	return nil
}

func (s *Store) Penalize(_ context.Context, customerID uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}
	defer s.lock()()

	acc := s.account(customerID)
	acc.RedeemablePoints -= points
	if acc.RedeemablePoints < 0 {
		acc.RedeemablePoints = 0
	}
	acc.UpdatedAt = time.Now()
	s.root.st.accounts[customerID] = acc
	return nil
}

func (s *Store) RecordVisit(
	_ context.Context,
	customerID uuid.UUID,
	points int,
	policy loyalty.Policy,
) error {
	defer s.lock()()

	acc := s.account(customerID)
	acc.RedeemablePoints += points
	acc.TotalConfirmedVisits++
	acc.StatusTier = string(policy.TierFor(acc.TotalConfirmedVisits))
	acc.UpdatedAt = time.Now()
	s.root.st.accounts[customerID] = acc
	return nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) SaveAuditLog(_ context.Context, entry *models.AuditLog) error {
	defer s.lock()()

	entry.ID = uint(len(s.root.st.auditLogs) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.root.st.auditLogs = append(s.root.st.auditLogs, *entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	defer s.lock()()

	var matched []models.AuditLog
	for _, e := range s.root.st.auditLogs {
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !e.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var (
	_ domain.Repository   = (*Store)(nil)
	_ schedule.Repository = (*Store)(nil)
	_ loyalty.Ledger      = (*Store)(nil)
	_ audit.Store         = (*Store)(nil)
)
