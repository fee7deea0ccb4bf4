package commission

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/models"
)

// DefaultRate applies when the provider has no commission rate configured.
const DefaultRate = 40

var hundred = decimal.NewFromInt(100)

// Calculator records provider earnings when a reservation is fulfilled.
// It is wired behind the fulfil transition through an interface, so the
// booking and commission sides stay decoupled.
type Calculator struct {
	reservations booking.ReservationStore
	catalog      booking.CatalogReader
	store        booking.CommissionStore
}

func NewCalculator(
	reservations booking.ReservationStore,
	catalog booking.CatalogReader,
	store booking.CommissionStore,
) *Calculator {
	return &Calculator{
		reservations: reservations,
		catalog:      catalog,
		store:        store,
	}
}

// OnFulfilled computes and records the commission for one reservation.
// Amounts come from the snapshotted list prices, not the discounted charge:
// a free or discounted booking still earns the provider a full commission.
// Safe to invoke more than once; at most one commission row is created.
func (c *Calculator) OnFulfilled(ctx context.Context, reservationID uint) error {
	r, err := c.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if booking.Status(r.Status) != booking.StatusFulfilled {
		return nil
	}

	rate := DefaultRate
	provider, err := c.catalog.GetProvider(ctx, r.ProviderID)
	if err != nil {
		return err
	}
	if provider.CommissionRate != nil {
		rate = *provider.CommissionRate
	}

	amount := decimal.Zero
	for _, item := range r.Items {
		amount = amount.Add(
			item.BasePrice.Mul(decimal.NewFromInt(int64(rate))).Div(hundred),
		)
	}
	amount = amount.Round(2)

	if !amount.IsPositive() {
		return nil
	}

	_, err = c.store.InsertOnce(ctx, &models.Commission{
		ProviderID:     r.ProviderID,
		ReservationID:  r.ID,
		Amount:         amount,
		PercentApplied: rate,
		Status:         models.CommissionPending,
	})
	return err
}
