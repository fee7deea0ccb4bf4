package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint     `gorm:"index" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Half-open interval [StartAt, EndAt) at the fixed UTC-3 offset.
	// EndAt = StartAt + DurationMin.
	StartAt     time.Time `gorm:"not null" json:"start_at"`
	EndAt       time.Time `gorm:"not null" json:"end_at"`
	DurationMin int       `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Items []ReservationItem `json:"items"`

	Notes string `gorm:"size:255" json:"notes"`

	// Client-generated key used to deduplicate retried submissions.
	// Unique per client when set (partial index, see db migration).
	IdempotencyKey string `gorm:"size:64" json:"idempotency_key,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	FulfilledAt *time.Time `json:"fulfilled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservationItem snapshots one requested service at booking time.
// PriceCharged is permanently fixed, never recomputed if the client's
// subscription later changes or lapses.
type ReservationItem struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"index" json:"reservation_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	DurationMin  int             `json:"duration_min"`
	BasePrice    decimal.Decimal `gorm:"type:numeric(10,2)" json:"base_price"`
	PriceCharged decimal.Decimal `gorm:"type:numeric(10,2)" json:"price_charged"`

	CreatedAt time.Time `json:"created_at"`
}
