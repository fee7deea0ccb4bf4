package models

import "time"

// NotificationEvent is a best-effort record of emitted reservation events,
// kept so failed deliveries can be reconciled later instead of silently lost.
type NotificationEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// DedupID lets downstream consumers deduplicate re-deliveries.
	DedupID string `gorm:"size:36;uniqueIndex" json:"dedup_id"`

	Type          string `gorm:"size:50;not null" json:"type"`
	ReservationID uint   `gorm:"index" json:"reservation_id"`
	ProviderID    uint   `json:"provider_id"`
	ClientID      uint   `json:"client_id"`

	Payload string `gorm:"type:text" json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}
