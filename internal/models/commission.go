package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CommissionPending = "pending"
	CommissionPaid    = "paid"
)

// Commission is what a provider earns for one fulfilled reservation, computed
// from list prices regardless of any discount the client received. The unique
// index on ReservationID makes creation idempotent per reservation.
type Commission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID    uint `gorm:"index" json:"provider_id"`
	ReservationID uint `gorm:"uniqueIndex" json:"reservation_id"`

	Amount         decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	PercentApplied int             `json:"percent_applied"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
