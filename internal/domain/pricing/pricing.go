package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
	"github.com/navalha-labs/booking-engine/internal/httperr"
	"github.com/navalha-labs/booking-engine/internal/models"
)

var hundred = decimal.NewFromInt(100)

type Line struct {
	ServiceID   uint            `json:"service_id"`
	DurationMin int             `json:"duration_min"`
	BasePrice   decimal.Decimal `json:"base_price"`
	FinalPrice  decimal.Decimal `json:"final_price"`
}

type Quote struct {
	Lines            []Line          `json:"lines"`
	Total            decimal.Decimal `json:"total"`
	TotalDurationMin int             `json:"total_duration_min"`
}

type Engine struct {
	catalog booking.CatalogReader
	subs    booking.SubscriptionReader
}

func NewEngine(catalog booking.CatalogReader, subs booking.SubscriptionReader) *Engine {
	return &Engine{catalog: catalog, subs: subs}
}

// PriceServices resolves each requested service against the client's
// qualifying subscription, if any. The returned final prices are what gets
// snapshotted into reservation items; they are never recomputed afterwards.
func (e *Engine) PriceServices(
	ctx context.Context,
	clientID uint,
	serviceIDs []uint,
	now time.Time,
) (*Quote, error) {

	if len(serviceIDs) == 0 {
		return nil, httperr.Validation("services_required")
	}

	services, err := e.catalog.GetServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	sub, discounts, err := e.subs.GetActiveSubscription(ctx, clientID, now)
	if err != nil {
		return nil, err
	}

	var rules map[uint]models.PlanDiscount
	if sub != nil {
		rules = make(map[uint]models.PlanDiscount, len(discounts))
		for _, d := range discounts {
			rules[d.ServiceID] = d
		}
	}

	quote := &Quote{Total: decimal.Zero}

	for _, id := range serviceIDs {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			return nil, httperr.Validation("service_not_found")
		}

		final := svc.BasePrice
		if rules != nil {
			if rule, ok := rules[id]; ok {
				final = Apply(svc.BasePrice, rule)
			}
		}

		quote.Lines = append(quote.Lines, Line{
			ServiceID:   id,
			DurationMin: svc.DurationMin,
			BasePrice:   svc.BasePrice,
			FinalPrice:  final,
		})
		quote.Total = quote.Total.Add(final)
		quote.TotalDurationMin += svc.DurationMin
	}

	return quote, nil
}

// Apply computes the discounted price for one rule. IsFree forces zero and
// ignores any configured percentage; otherwise the percentage reduction is
// clamped so the result never goes negative.
func Apply(base decimal.Decimal, rule models.PlanDiscount) decimal.Decimal {
	if rule.IsFree {
		return decimal.Zero
	}

	pct := decimal.NewFromInt(int64(rule.Percentage))
	final := base.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
