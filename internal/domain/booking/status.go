package booking

import "github.com/navalha-labs/booking-engine/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusFulfilled  Status = "fulfilled"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Blocking reports whether a reservation in this status still occupies its
// time interval for conflict purposes.
func (s Status) Blocking() bool {
	return s != StatusCancelled
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusFulfilled || s == StatusCancelled || s == StatusNoShow
}

// ===============================
// Transition rules
// ===============================

func CanCheckIn(current Status) error {
	if current != StatusScheduled {
		return httperr.Conflict(httperr.CodeInvalidState)
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusCheckedIn {
		return httperr.Conflict(httperr.CodeInvalidState)
	}
	return nil
}

func CanFulfill(current Status) error {
	if current != StatusInProgress {
		return httperr.Conflict(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusCheckedIn {
		return httperr.Conflict(httperr.CodeInvalidState)
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusScheduled {
		return httperr.Conflict(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
