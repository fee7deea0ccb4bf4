package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
	"github.com/navalha-labs/booking-engine/internal/timezone"
)

func availabilityInput(t *testing.T) booking.AvailabilityInput {
	t.Helper()
	date, err := timezone.ParseDate("2030-06-10")
	require.NoError(t, err)
	return booking.AvailabilityInput{ProviderID: 1, Date: date, ServiceIDs: []uint{1}}
}

func seedBooking(t *testing.T, store *fakeStore, from, to string) {
	t.Helper()
	date, err := timezone.ParseDate("2030-06-10")
	require.NoError(t, err)
	startAt, err := timezone.At(date, from)
	require.NoError(t, err)
	endAt, err := timezone.At(date, to)
	require.NoError(t, err)

	err = store.InsertAtomic(context.Background(), &models.Reservation{
		ProviderID:  1,
		ClientID:    1,
		StartAt:     startAt,
		EndAt:       endAt,
		DurationMin: int(endAt.Sub(startAt).Minutes()),
		Status:      string(booking.StatusScheduled),
	}, nil)
	require.NoError(t, err)
}

func slotStarts(slots []booking.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGetAvailabilityAroundBooking(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.schedule.StartTime = "09:00"
	catalog.schedule.EndTime = "12:00"

	store := newFakeStore()
	seedBooking(t, store, "10:00", "10:45")

	uc := NewGetAvailability(catalog, store, nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, slotStarts(slots))
}

func TestGetAvailabilityScheduleStorageFailureSurfaces(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.scheduleErr = httperr.Unavailable(httperr.CodeStorage, errors.New("connection refused"))

	uc := NewGetAvailability(catalog, newFakeStore(), nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(t))
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindUnavailable))
	assert.Nil(t, slots, "a storage failure must not read as an empty day")
}

func TestGetAvailabilityNoScheduleMeansEmpty(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.schedule = nil

	uc := NewGetAvailability(catalog, newFakeStore(), nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailabilityLunchBlocks(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.schedule.StartTime = "11:00"
	catalog.schedule.EndTime = "14:00"
	catalog.schedule.LunchStart = "12:00"
	catalog.schedule.LunchEnd = "13:00"

	uc := NewGetAvailability(catalog, newFakeStore(), nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "11:30", "13:00", "13:30"}, slotStarts(slots))
}

func TestGetAvailabilityWindowCrossesMidnight(t *testing.T) {
	// late-night shift: a reservation started the previous civil day still
	// blocks the early slots of the queried day
	catalog := newFakeCatalog()
	catalog.schedule.StartTime = "00:00"
	catalog.schedule.EndTime = "02:00"

	store := newFakeStore()
	startAt, err := timezone.ParseDateTime("2030-06-09", "23:30")
	require.NoError(t, err)
	endAt, err := timezone.ParseDateTime("2030-06-10", "00:30")
	require.NoError(t, err)
	require.NoError(t, store.InsertAtomic(context.Background(), &models.Reservation{
		ProviderID:  1,
		ClientID:    1,
		StartAt:     startAt,
		EndAt:       endAt,
		DurationMin: 60,
		Status:      string(booking.StatusScheduled),
	}, nil))

	uc := NewGetAvailability(catalog, store, nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"00:30", "01:00", "01:30"}, slotStarts(slots))
}

func TestGetAvailabilityCancelledBookingDoesNotBlock(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.schedule.StartTime = "09:00"
	catalog.schedule.EndTime = "10:00"

	store := newFakeStore()
	seedBooking(t, store, "09:00", "09:30")

	now := timezone.Now()
	r, err := store.GetReservation(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, booking.Cancel(r, now))
	require.NoError(t, store.UpdateReservation(context.Background(), r))

	uc := NewGetAvailability(catalog, store, nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slotStarts(slots))
}

func TestGetAvailabilityCombinedServices(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.schedule.StartTime = "09:00"
	catalog.schedule.EndTime = "11:00"

	uc := NewGetAvailability(catalog, newFakeStore(), nil)

	in := availabilityInput(t)
	in.ServiceIDs = []uint{1, 2} // 75 minutes combined

	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slotStarts(slots))
	assert.Equal(t, "10:15", slots[0].End)
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	uc := NewGetAvailability(newFakeCatalog(), newFakeStore(), nil)

	in := availabilityInput(t)
	in.ServiceIDs = []uint{99}

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, "service_not_found"))
}

type memoryCache struct {
	entries map[uint][]booking.TimeSlot
	sets    int
}

func (m *memoryCache) Get(_ context.Context, in booking.AvailabilityInput) ([]booking.TimeSlot, bool) {
	slots, ok := m.entries[in.ProviderID]
	return slots, ok
}

func (m *memoryCache) Set(_ context.Context, in booking.AvailabilityInput, slots []booking.TimeSlot) {
	m.entries[in.ProviderID] = slots
	m.sets++
}

func TestGetAvailabilityCacheReadThrough(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.schedule.StartTime = "09:00"
	catalog.schedule.EndTime = "10:00"

	cache := &memoryCache{entries: make(map[uint][]booking.TimeSlot)}
	uc := NewGetAvailability(catalog, newFakeStore(), cache)

	first, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	second, err := uc.Execute(context.Background(), availabilityInput(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "a cache hit must not recompute")
}
