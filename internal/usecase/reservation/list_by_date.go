package reservation

import (
	"context"
	"time"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/dto"
	"github.com/navalha-labs/booking-engine/internal/timezone"
)

type ListByDate struct {
	store booking.ReservationStore
}

func NewListByDate(store booking.ReservationStore) *ListByDate {
	return &ListByDate{store: store}
}

func (uc *ListByDate) Execute(
	ctx context.Context,
	providerID uint,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	start, end := timezone.DayBounds(date)

	reservations, err := uc.store.ListForPeriod(ctx, providerID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, r := range reservations {
		item := dto.ReservationListDTO{
			ID:         r.ID,
			StartAt:    r.StartAt,
			EndAt:      r.EndAt,
			Status:     r.Status,
			ClientName: r.Client.Name,
		}
		for _, it := range r.Items {
			item.Services = append(item.Services, it.Service.Name)
		}
		out = append(out, item)
	}

	return out, nil
}
