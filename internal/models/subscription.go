package models

import "time"

const (
	SubscriptionActive    = "active"
	SubscriptionTrialing  = "trialing"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

type SubscriptionPlan struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanDiscount maps a plan to a discount on one service. A plan carries at
// most one rule per service. IsFree wins over Percentage.
type PlanDiscount struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PlanID    uint `gorm:"index:idx_plan_service,unique" json:"plan_id"`
	ServiceID uint `gorm:"index:idx_plan_service,unique" json:"service_id"`

	IsFree     bool `json:"is_free"`
	Percentage int  `json:"percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientSubscription is the locally stored billing state. Only active or
// trialing rows with PeriodEnd in the future qualify for discounts; the
// billing syncer refreshes Status/PeriodEnd from the payment gateway.
type ClientSubscription struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index" json:"client_id"`
	PlanID   uint `json:"plan_id"`

	Status    string    `gorm:"size:20;default:'active'" json:"status"`
	PeriodEnd time.Time `json:"period_end"`

	// Mercado Pago preapproval id backing this subscription.
	PreapprovalID string `gorm:"size:64;index" json:"preapproval_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Qualifies reports whether the subscription currently grants discounts.
func (s *ClientSubscription) Qualifies(now time.Time) bool {
	if s.Status != SubscriptionActive && s.Status != SubscriptionTrialing {
		return false
	}
	return s.PeriodEnd.After(now)
}
