package billing

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/rs/zerolog"

	"github.com/navalha-labs/booking-engine/internal/models"
)

// SubscriptionStore is the slice of persistence the syncer needs.
type SubscriptionStore interface {
	GetByPreapprovalID(ctx context.Context, preapprovalID string) (*models.ClientSubscription, error)
	UpdateSubscription(ctx context.Context, sub *models.ClientSubscription) error
}

// SubscriptionSyncer refreshes locally stored subscription state from the
// Mercado Pago preapproval API. The discount resolver only ever reads the
// local rows; this is the one component that writes them.
type SubscriptionSyncer struct {
	client preapproval.Client
	store  SubscriptionStore
	log    zerolog.Logger
}

func NewSubscriptionSyncer(
	accessToken string,
	store SubscriptionStore,
	log zerolog.Logger,
) (*SubscriptionSyncer, error) {

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &SubscriptionSyncer{
		client: preapproval.NewClient(cfg),
		store:  store,
		log:    log,
	}, nil
}

// Sync pulls the current preapproval state and updates the matching local
// subscription. Called from the gateway webhook.
func (s *SubscriptionSyncer) Sync(ctx context.Context, preapprovalID string) error {
	pa, err := s.client.Get(ctx, preapprovalID)
	if err != nil {
		return err
	}

	sub, err := s.store.GetByPreapprovalID(ctx, preapprovalID)
	if err != nil {
		return err
	}

	sub.Status = mapStatus(pa.Status)
	if !pa.NextPaymentDate.IsZero() {
		sub.PeriodEnd = pa.NextPaymentDate
	}

	if err := s.store.UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	s.log.Info().
		Str("preapproval_id", preapprovalID).
		Str("status", sub.Status).
		Time("period_end", sub.PeriodEnd).
		Msg("subscription synced")

	return nil
}

func mapStatus(gateway string) string {
	switch gateway {
	case "authorized":
		return models.SubscriptionActive
	case "paused", "pending":
		return models.SubscriptionPastDue
	case "cancelled":
		return models.SubscriptionCancelled
	default:
		return models.SubscriptionPastDue
	}
}
