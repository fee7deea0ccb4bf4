package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
)

// ======================================================
// CATALOG
// ======================================================

type fakeCatalog struct {
	services map[uint]models.Service

	// one schedule applied to every weekday; nil means no working hours
	schedule    *models.ProviderSchedule
	scheduleErr error

	providers map[uint]models.Provider
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[uint]models.Service{
			1: {ID: 1, Name: "corte", DurationMin: 30, BasePrice: dec("50.00"), Active: true},
			2: {ID: 2, Name: "barba", DurationMin: 45, BasePrice: dec("80.00"), Active: true},
		},
		schedule: &models.ProviderSchedule{
			StartTime: "09:00",
			EndTime:   "18:00",
			Active:    true,
		},
		providers: map[uint]models.Provider{
			1: {ID: 1, Name: "Marcos"},
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fakeCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, httperr.NotFound("service_not_found")
	}
	return &s, nil
}

func (f *fakeCatalog) GetServices(_ context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetSchedule(_ context.Context, _ uint, _ int) (*models.ProviderSchedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.schedule, nil
}

func (f *fakeCatalog) GetProvider(_ context.Context, id uint) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, httperr.NotFound("provider_not_found")
	}
	return &p, nil
}

func (f *fakeCatalog) MaxServiceDuration(context.Context) (time.Duration, error) {
	max := 0
	for _, s := range f.services {
		if s.Active && s.DurationMin > max {
			max = s.DurationMin
		}
	}
	return time.Duration(max) * time.Minute, nil
}

// ======================================================
// RESERVATION STORE
// ======================================================

// fakeStore keeps reservations in memory and re-validates non-overlap under a
// mutex inside InsertAtomic, mirroring the transactional storage contract.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint
	rows   []*models.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

var _ booking.ReservationStore = (*fakeStore)(nil)

func (f *fakeStore) FindOverlapping(
	_ context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, r := range f.rows {
		if r.ProviderID != providerID || !booking.Status(r.Status).Blocking() {
			continue
		}
		if booking.IntervalsOverlap(r.StartAt, r.EndAt, from, to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertAtomic(
	_ context.Context,
	r *models.Reservation,
	items []models.ReservationItem,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.rows {
		if other.ProviderID != r.ProviderID || !booking.Status(other.Status).Blocking() {
			continue
		}
		if booking.IntervalsOverlap(r.StartAt, r.EndAt, other.StartAt, other.EndAt) {
			return httperr.Conflict(httperr.CodeSlotConflict)
		}
	}

	if r.IdempotencyKey != "" {
		for _, other := range f.rows {
			if other.ClientID == r.ClientID && other.IdempotencyKey == r.IdempotencyKey {
				return booking.ErrDuplicateKey
			}
		}
	}

	r.ID = f.nextID
	f.nextID++
	for i := range items {
		items[i].ReservationID = r.ID
	}
	r.Items = items

	stored := *r
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeStore) FindByIdempotencyKey(
	_ context.Context,
	clientID uint,
	key string,
) (*models.Reservation, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rows {
		if r.ClientID == clientID && r.IdempotencyKey == key {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetReservation(_ context.Context, id uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, httperr.NotFound("reservation_not_found")
}

func (f *fakeStore) UpdateReservation(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, other := range f.rows {
		if other.ID == r.ID {
			cp := *r
			f.rows[i] = &cp
			return nil
		}
	}
	return httperr.NotFound("reservation_not_found")
}

func (f *fakeStore) ListForPeriod(
	_ context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, r := range f.rows {
		if r.ProviderID == providerID && !r.StartAt.Before(from) && r.StartAt.Before(to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

// ======================================================
// CLIENTS / SUBSCRIPTIONS
// ======================================================

type fakeClients struct {
	mu      sync.Mutex
	nextID  uint
	byPhone map[string]*models.Client
}

func newFakeClients() *fakeClients {
	return &fakeClients{nextID: 1, byPhone: make(map[string]*models.Client)}
}

func (f *fakeClients) GetOrCreateClient(
	_ context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.byPhone[phone]; ok {
		cp := *c
		return &cp, nil
	}

	c := &models.Client{ID: f.nextID, Name: name, Phone: phone, Email: email}
	f.nextID++
	f.byPhone[phone] = c

	cp := *c
	return &cp, nil
}

func (f *fakeClients) GetClient(_ context.Context, id uint) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.byPhone {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, httperr.NotFound("client_not_found")
}

type noSubs struct{}

func (noSubs) GetActiveSubscription(
	context.Context,
	uint,
	time.Time,
) (*models.ClientSubscription, []models.PlanDiscount, error) {
	return nil, nil, nil
}
