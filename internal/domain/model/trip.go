package model

import "time"

// Trip is a completed or ongoing rental booking, created by the customer app.
// The console reads trips only for revenue and volume aggregation.
type Trip struct {
	ID          string     `json:"id"`
	CarID       string     `json:"car_id"`
	UserID      string     `json:"user_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TotalAmount float64    `json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
}
