package dto

import "time"

type ReservationListDTO struct {
	ID         uint      `json:"id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	Services   []string  `json:"services"`
}
