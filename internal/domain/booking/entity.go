package booking

import (
	"time"

	"github.com/navalha-labs/booking-engine/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func CheckIn(r *models.Reservation) error {
	if err := CanCheckIn(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusCheckedIn)
	return nil
}

func Start(r *models.Reservation) error {
	if err := CanStart(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusInProgress)
	return nil
}

func Fulfill(r *models.Reservation, now time.Time) error {
	if err := CanFulfill(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusFulfilled)
	r.FulfilledAt = &now
	return nil
}

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}

func MarkNoShow(r *models.Reservation) error {
	if err := CanMarkNoShow(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusNoShow)
	return nil
}
