package models

import "time"

// Provider is a barber who takes reservations. Login uses email + bcrypt hash.
type Provider struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'provider'" json:"role"`

	// Percentage of the list price earned per fulfilled reservation.
	// Nil means the default rate applies.
	CommissionRate *int `json:"commission_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
