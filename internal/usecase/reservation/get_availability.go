package reservation

import (
	"context"
	"time"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/timezone"
)

// SlotCache is an optional read-through cache for generated slot lists.
// Slot generation tolerates slightly stale reads; the commit path never
// consults this cache.
type SlotCache interface {
	Get(ctx context.Context, in booking.AvailabilityInput) ([]booking.TimeSlot, bool)
	Set(ctx context.Context, in booking.AvailabilityInput, slots []booking.TimeSlot)
}

type GetAvailability struct {
	catalog booking.CatalogReader
	store   booking.ReservationStore
	cache   SlotCache
}

func NewGetAvailability(
	catalog booking.CatalogReader,
	store booking.ReservationStore,
	cache SlotCache,
) *GetAvailability {
	return &GetAvailability{
		catalog: catalog,
		store:   store,
		cache:   cache,
	}
}

// Execute lists the bookable start times for a provider/date/service-set.
// Advisory only: availability can change between display and commit, so the
// committer re-checks conflicts under its own transaction.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in booking.AvailabilityInput,
) ([]booking.TimeSlot, error) {

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, in); ok {
			return slots, nil
		}
	}

	needed, err := uc.neededDuration(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	weekday := int(in.Date.In(timezone.Fixed).Weekday())

	sched, err := uc.catalog.GetSchedule(ctx, in.ProviderID, weekday)
	if err != nil {
		return nil, err
	}
	if sched == nil || !sched.Active {
		// no schedule for the day means no availability, not an error
		return []booking.TimeSlot{}, nil
	}

	dayStart, err := timezone.At(in.Date, sched.StartTime)
	if err != nil {
		return []booking.TimeSlot{}, nil
	}
	dayEnd, err := timezone.At(in.Date, sched.EndTime)
	if err != nil {
		return []booking.TimeSlot{}, nil
	}

	busy, err := uc.busyIntervals(ctx, in.ProviderID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// lunch break blocks candidates the same way reservations do
	if sched.LunchStart != "" && sched.LunchEnd != "" {
		ls, lsErr := timezone.At(in.Date, sched.LunchStart)
		le, leErr := timezone.At(in.Date, sched.LunchEnd)
		if lsErr == nil && leErr == nil {
			busy = append(busy, booking.BusyInterval{Start: ls, End: le})
		}
	}

	starts := booking.GenerateSlots(dayStart, dayEnd, needed, busy)
	slots := booking.FormatSlots(starts, needed)

	if uc.cache != nil {
		uc.cache.Set(ctx, in, slots)
	}

	return slots, nil
}

func (uc *GetAvailability) neededDuration(
	ctx context.Context,
	serviceIDs []uint,
) (time.Duration, error) {

	if len(serviceIDs) == 0 {
		return 0, httperr.Validation("services_required")
	}

	services, err := uc.catalog.GetServices(ctx, serviceIDs)
	if err != nil {
		return 0, err
	}

	byID := make(map[uint]int, len(services))
	for _, s := range services {
		if s.Active {
			byID[s.ID] = s.DurationMin
		}
	}

	total := 0
	for _, id := range serviceIDs {
		min, ok := byID[id]
		if !ok {
			return 0, httperr.Validation("service_not_found")
		}
		total += min
	}

	return time.Duration(total) * time.Minute, nil
}

// busyIntervals fetches non-cancelled reservations in a window widened past
// the working day, so stored instants that land on a neighboring civil day
// under the fixed UTC-3 offset are still seen.
func (uc *GetAvailability) busyIntervals(
	ctx context.Context,
	providerID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]booking.BusyInterval, error) {

	widen, err := uc.catalog.MaxServiceDuration(ctx)
	if err != nil {
		return nil, err
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
		dayStart.Add(-widen),
		dayEnd.Add(widen),
	)
	if err != nil {
		return nil, err
	}

	busy := make([]booking.BusyInterval, 0, len(existing))
	for _, r := range existing {
		busy = append(busy, booking.BusyInterval{
			Start: timezone.In(r.StartAt),
			End:   timezone.In(r.EndAt),
		})
	}
	return busy, nil
}
