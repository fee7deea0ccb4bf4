package reservation

import (
	"context"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
	"github.com/navalha-labs/booking-engine/internal/notify"
	"github.com/navalha-labs/booking-engine/internal/timezone"
)

// CommissionTrigger is implemented by the commission calculator. Wiring it as
// an interface keeps the booking side free of a direct dependency on the
// commission side.
type CommissionTrigger interface {
	OnFulfilled(ctx context.Context, reservationID uint) error
}

// TransitionReservation drives the non-cancel status transitions:
// scheduled → checkedIn → inProgress → fulfilled, and scheduled → noShow.
// Fulfilment triggers the commission calculation exactly once; the storage
// layer's uniqueness constraint absorbs repeat invocations.
type TransitionReservation struct {
	store      booking.ReservationStore
	commission CommissionTrigger
	dispatcher *notify.Dispatcher
}

func NewTransitionReservation(
	store booking.ReservationStore,
	commission CommissionTrigger,
	dispatcher *notify.Dispatcher,
) *TransitionReservation {
	return &TransitionReservation{
		store:      store,
		commission: commission,
		dispatcher: dispatcher,
	}
}

func (uc *TransitionReservation) CheckIn(
	ctx context.Context,
	reservationID uint,
	actor Actor,
) (*models.Reservation, error) {
	return uc.apply(ctx, reservationID, actor, booking.CheckIn)
}

func (uc *TransitionReservation) Start(
	ctx context.Context,
	reservationID uint,
	actor Actor,
) (*models.Reservation, error) {
	return uc.apply(ctx, reservationID, actor, booking.Start)
}

func (uc *TransitionReservation) MarkNoShow(
	ctx context.Context,
	reservationID uint,
	actor Actor,
) (*models.Reservation, error) {
	return uc.apply(ctx, reservationID, actor, booking.MarkNoShow)
}

// Fulfill is idempotent: a reservation that is already fulfilled is accepted
// and only re-triggers the commission calculation. That keeps a retry viable
// when the fulfilment persisted but the commission write failed.
func (uc *TransitionReservation) Fulfill(
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

	if booking.Status(r.Status) != booking.StatusFulfilled {
		r, err = uc.apply(ctx, reservationID, actor, func(r *models.Reservation) error {
			return booking.Fulfill(r, timezone.Now())
		})
		if err != nil {
			return nil, err
		}
	}

	if uc.commission != nil {
		if err := uc.commission.OnFulfilled(ctx, r.ID); err != nil {
			// the reservation stays fulfilled; commission recording
			// failures surface to the caller for retry, not rollback
			return r, err
		}
	}

	return r, nil
}

func (uc *TransitionReservation) apply(
	ctx context.Context,
	reservationID uint,
	actor Actor,
	action func(*models.Reservation) error,
) (*models.Reservation, error) {

	r, err := uc.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, httperr.NotFound("reservation_not_found")
	}

	if err := authorize(actor, r); err != nil {
		return nil, err
	}

	if err := action(r); err != nil {
		return nil, err
	}

	if err := uc.store.UpdateReservation(ctx, r); err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.Event{
		Type:          notify.EventReservationUpdated,
		ReservationID: r.ID,
		ProviderID:    r.ProviderID,
		ClientID:      r.ClientID,
		At:            timezone.Now(),
	})

	return r, nil
}
