package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/domain/pricing"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
	"github.com/navalha-labs/booking-engine/internal/notify"
	"github.com/navalha-labs/booking-engine/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ProviderID uint

	// Either a known client id or contact details for get-or-create.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string
	Time  string
	Notes string

	// Optional client-generated key; retried submissions with the same key
	// return the originally created reservation instead of a second one.
	IdempotencyKey string
}

// ======================================================
// USE CASE
// ======================================================

// CreateReservation is the booking committer: it validates, prices, re-checks
// conflicts, and performs the conflict-safe atomic insert. A pre-check that
// passes is never trusted on its own; the store re-validates non-overlap at
// write time, so two concurrent overlapping commits yield exactly one winner.
type CreateReservation struct {
	catalog    booking.CatalogReader
	store      booking.ReservationStore
	clients    booking.ClientStore
	pricer     *pricing.Engine
	dispatcher *notify.Dispatcher

	// Minimum minutes between now and the reservation start. Zero disables.
	MinAdvanceMinutes int
}

func NewCreateReservation(
	catalog booking.CatalogReader,
	store booking.ReservationStore,
	clients booking.ClientStore,
	pricer *pricing.Engine,
	dispatcher *notify.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		catalog:    catalog,
		store:      store,
		clients:    clients,
		pricer:     pricer,
		dispatcher: dispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.Validation("services_required")
	}

	if _, err := uc.catalog.GetProvider(ctx, in.ProviderID); err != nil {
		return nil, httperr.NotFound("provider_not_found")
	}

	startAt, err := timezone.ParseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	now := timezone.Now()
	if uc.MinAdvanceMinutes > 0 {
		if startAt.Before(now.Add(time.Duration(uc.MinAdvanceMinutes) * time.Minute)) {
			return nil, httperr.Validation("too_soon")
		}
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		existing, err := uc.store.FindByIdempotencyKey(ctx, client.ID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	quote, err := uc.pricer.PriceServices(ctx, client.ID, in.ServiceIDs, now)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(quote.TotalDurationMin) * time.Minute
	endAt := startAt.Add(duration)

	if err := uc.checkWorkingHours(ctx, in.ProviderID, startAt, endAt); err != nil {
		return nil, err
	}

	if err := uc.checkConflicts(ctx, in.ProviderID, startAt, endAt); err != nil {
		return nil, err
	}

	r := &models.Reservation{
		ProviderID:     in.ProviderID,
		ClientID:       client.ID,
		StartAt:        startAt,
		EndAt:          endAt,
		DurationMin:    quote.TotalDurationMin,
		Status:         string(booking.InitialStatus()),
		Notes:          in.Notes,
		IdempotencyKey: in.IdempotencyKey,
	}

	items := make([]models.ReservationItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		items = append(items, models.ReservationItem{
			ServiceID:    line.ServiceID,
			DurationMin:  line.DurationMin,
			BasePrice:    line.BasePrice,
			PriceCharged: line.FinalPrice,
		})
	}

	if err := uc.store.InsertAtomic(ctx, r, items); err != nil {
		if errors.Is(err, booking.ErrDuplicateKey) {
			// a retry with the same key won the race; hand back its result
			existing, readErr := uc.store.FindByIdempotencyKey(ctx, client.ID, in.IdempotencyKey)
			if readErr == nil && existing != nil {
				return existing, nil
			}
			return nil, httperr.Unavailable(httperr.CodeStorage, err)
		}
		return nil, err
	}
	r.Items = items

	// fire-and-forget: a failed emission never rolls back the reservation
	uc.dispatcher.Dispatch(notify.Event{
		Type:          notify.EventReservationCreated,
		ReservationID: r.ID,
		ProviderID:    r.ProviderID,
		ClientID:      r.ClientID,
		At:            now,
	})

	return r, nil
}

func (uc *CreateReservation) resolveClient(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.clients.GetClient(ctx, in.ClientID)
		if err != nil {
			return nil, httperr.NotFound("client_not_found")
		}
		return client, nil
	}

	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.Validation("client_contact_required")
	}

	return uc.clients.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
}

func (uc *CreateReservation) checkWorkingHours(
	ctx context.Context,
	providerID uint,
	startAt time.Time,
	endAt time.Time,
) error {

	weekday := int(startAt.In(timezone.Fixed).Weekday())

	sched, err := uc.catalog.GetSchedule(ctx, providerID, weekday)
	if err != nil {
		return err
	}
	if sched == nil || !sched.Active {
		return httperr.Validation("outside_working_hours")
	}

	dayStart, err := timezone.At(startAt, sched.StartTime)
	if err != nil {
		return httperr.Validation("outside_working_hours")
	}
	dayEnd, err := timezone.At(startAt, sched.EndTime)
	if err != nil {
		return httperr.Validation("outside_working_hours")
	}

	if startAt.Before(dayStart) || endAt.After(dayEnd) {
		return httperr.Validation("outside_working_hours")
	}

	if sched.LunchStart != "" && sched.LunchEnd != "" {
		ls, lsErr := timezone.At(startAt, sched.LunchStart)
		le, leErr := timezone.At(startAt, sched.LunchEnd)
		if lsErr == nil && leErr == nil && booking.IntervalsOverlap(startAt, endAt, ls, le) {
			return httperr.Validation("outside_working_hours")
		}
	}

	return nil
}

// checkConflicts is the advisory pre-check. The window stretches by the
// longest catalog service on both sides so reservations whose stored instant
// lands on a neighboring civil day are still fetched.
func (uc *CreateReservation) checkConflicts(
	ctx context.Context,
	providerID uint,
	startAt time.Time,
	endAt time.Time,
) error {

	widen, err := uc.catalog.MaxServiceDuration(ctx)
	if err != nil {
		return err
	}
	if widen < booking.SlotGranularity {
		widen = booking.SlotGranularity
	}
	if widen > booking.WindowWideningCap {
		widen = booking.WindowWideningCap
	}

	existing, err := uc.store.FindOverlapping(
		ctx,
		providerID,
		startAt.Add(-widen),
		endAt.Add(widen),
	)
	if err != nil {
		return err
	}

	for _, other := range existing {
		if booking.IntervalsOverlap(startAt, endAt, other.StartAt, other.EndAt) {
			return httperr.Conflict(httperr.CodeSlotConflict)
		}
	}

	return nil
}
