package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navalha-labs/booking-engine/internal/models"
)

// StoreSink persists emitted events so an external delivery worker can pick
// them up and failed deliveries can be reconciled instead of silently lost.
type StoreSink struct {
	db *gorm.DB
}

func NewStoreSink(db *gorm.DB) *StoreSink {
	return &StoreSink{db: db}
}

func (s *StoreSink) Deliver(ctx context.Context, ev Event) error {
	var payload string
	if ev.Payload != nil {
		if b, err := json.Marshal(ev.Payload); err == nil {
			payload = string(b)
		}
	}

	rec := models.NotificationEvent{
		DedupID:       uuid.NewString(),
		Type:          ev.Type,
		ReservationID: ev.ReservationID,
		ProviderID:    ev.ProviderID,
		ClientID:      ev.ClientID,
		Payload:       payload,
	}

	return s.db.WithContext(ctx).Create(&rec).Error
}
