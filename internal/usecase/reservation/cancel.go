package reservation

import (
	"context"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
	"github.com/navalha-labs/booking-engine/internal/notify"
	"github.com/navalha-labs/booking-engine/internal/timezone"
)

type CancelReservation struct {
	store      booking.ReservationStore
	dispatcher *notify.Dispatcher
}

func NewCancelReservation(
	store booking.ReservationStore,
	dispatcher *notify.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		store:      store,
		dispatcher: dispatcher,
	}
}

// Execute cancels a reservation on behalf of its client or provider.
// Cancellation only removes a blocking interval and so needs none of the
// commit path's exclusivity; the freed interval is immediately bookable.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	reservationID uint,
	actor Actor,
) (*models.Reservation, error) {

	r, err := uc.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, httperr.NotFound("reservation_not_found")
	}

	if err := authorize(actor, r); err != nil {
		return nil, err
	}

	if err := booking.Cancel(r, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.store.UpdateReservation(ctx, r); err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.Event{
		Type:          notify.EventReservationCancelled,
		ReservationID: r.ID,
		ProviderID:    r.ProviderID,
		ClientID:      r.ClientID,
		At:            timezone.Now(),
	})

	return r, nil
}
