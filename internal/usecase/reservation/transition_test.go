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
)

type countingTrigger struct {
	calls int
	err   error
}

func (c *countingTrigger) OnFulfilled(context.Context, uint) error {
	c.calls++
	return c.err
}

func seedReservation(t *testing.T, store *fakeStore) *models.Reservation {
	t.Helper()

	catalog := newFakeCatalog()
	uc := newCreateUC(catalog, store, newFakeClients())

	r, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)
	return r
}

func TestTransitionFullLifecycle(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	trigger := &countingTrigger{}
	uc := NewTransitionReservation(store, trigger, nil)

	actor := Actor{ProviderID: r.ProviderID}

	r2, err := uc.CheckIn(context.Background(), r.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusCheckedIn), r2.Status)

	r2, err = uc.Start(context.Background(), r.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusInProgress), r2.Status)

	r2, err = uc.Fulfill(context.Background(), r.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusFulfilled), r2.Status)
	assert.NotNil(t, r2.FulfilledAt)

	assert.Equal(t, 1, trigger.calls)

	// the persisted row advanced too
	stored, err := store.GetReservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusFulfilled), stored.Status)
}

func TestTransitionOutOfOrderRejected(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	uc := NewTransitionReservation(store, &countingTrigger{}, nil)

	actor := Actor{ProviderID: r.ProviderID}

	_, err := uc.Start(context.Background(), r.ID, actor)
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, httperr.CodeInvalidState))

	_, err = uc.Fulfill(context.Background(), r.ID, actor)
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, httperr.CodeInvalidState))
}

func TestTransitionAuthorization(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	uc := NewTransitionReservation(store, &countingTrigger{}, nil)

	_, err := uc.CheckIn(context.Background(), r.ID, Actor{ProviderID: r.ProviderID + 1})
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, httperr.CodeNotOwner))

	// the reservation's own client may act on it
	_, err = uc.CheckIn(context.Background(), r.ID, Actor{ClientID: r.ClientID})
	assert.NoError(t, err)
}

func TestTransitionUnknownReservation(t *testing.T) {
	uc := NewTransitionReservation(newFakeStore(), &countingTrigger{}, nil)

	_, err := uc.CheckIn(context.Background(), 42, Actor{ProviderID: 1})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestTransitionNoShow(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	trigger := &countingTrigger{}
	uc := NewTransitionReservation(store, trigger, nil)

	r2, err := uc.MarkNoShow(context.Background(), r.ID, Actor{ProviderID: r.ProviderID})
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusNoShow), r2.Status)
	assert.Equal(t, 0, trigger.calls, "no-show earns no commission")

	// terminal: nothing else applies
	_, err = uc.CheckIn(context.Background(), r.ID, Actor{ProviderID: r.ProviderID})
	assert.True(t, httperr.IsCode(err, httperr.CodeInvalidState))
}

func TestFulfillSurfacesCommissionError(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	trigger := &countingTrigger{err: errors.New("commission storage down")}
	uc := NewTransitionReservation(store, trigger, nil)

	actor := Actor{ProviderID: r.ProviderID}
	_, err := uc.CheckIn(context.Background(), r.ID, actor)
	require.NoError(t, err)
	_, err = uc.Start(context.Background(), r.ID, actor)
	require.NoError(t, err)

	r2, err := uc.Fulfill(context.Background(), r.ID, actor)
	require.Error(t, err)

	// the fulfilment itself sticks; only the commission write failed
	require.NotNil(t, r2)
	assert.Equal(t, string(booking.StatusFulfilled), r2.Status)

	stored, getErr := store.GetReservation(context.Background(), r.ID)
	require.NoError(t, getErr)
	assert.Equal(t, string(booking.StatusFulfilled), stored.Status)
}

func TestFulfillRetryRecoversCommission(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	trigger := &countingTrigger{err: errors.New("commission storage down")}
	uc := NewTransitionReservation(store, trigger, nil)

	actor := Actor{ProviderID: r.ProviderID}
	_, err := uc.CheckIn(context.Background(), r.ID, actor)
	require.NoError(t, err)
	_, err = uc.Start(context.Background(), r.ID, actor)
	require.NoError(t, err)

	_, err = uc.Fulfill(context.Background(), r.ID, actor)
	require.Error(t, err)
	require.Equal(t, 1, trigger.calls)

	// commission storage recovers; retrying the fulfil must reach the
	// calculator again instead of bouncing off the fulfilled status
	trigger.err = nil
	r2, err := uc.Fulfill(context.Background(), r.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusFulfilled), r2.Status)
	assert.Equal(t, 2, trigger.calls)
}

func TestFulfillRepeatIsIdempotent(t *testing.T) {
	store := newFakeStore()
	r := seedReservation(t, store)
	trigger := &countingTrigger{}
	uc := NewTransitionReservation(store, trigger, nil)

	actor := Actor{ProviderID: r.ProviderID}
	_, err := uc.CheckIn(context.Background(), r.ID, actor)
	require.NoError(t, err)
	_, err = uc.Start(context.Background(), r.ID, actor)
	require.NoError(t, err)
	_, err = uc.Fulfill(context.Background(), r.ID, actor)
	require.NoError(t, err)

	r2, err := uc.Fulfill(context.Background(), r.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusFulfilled), r2.Status)

	// ownership still applies on the repeat path
	_, err = uc.Fulfill(context.Background(), r.ID, Actor{ProviderID: r.ProviderID + 1})
	require.Error(t, err)
	assert.True(t, httperr.IsCode(err, httperr.CodeNotOwner))
}
