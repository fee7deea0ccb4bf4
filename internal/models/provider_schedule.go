package models

import "time"

// ProviderSchedule holds the working window for one (provider, weekday) pair.
// Times are "HH:MM" wall-clock strings at the fixed UTC-3 offset. A missing or
// inactive row means the provider does not work that weekday.
type ProviderSchedule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index:idx_schedule_provider_weekday,unique" json:"provider_id"`

	Weekday int `gorm:"index:idx_schedule_provider_weekday,unique" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
