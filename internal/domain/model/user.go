package model

import "time"

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

// User is a renter account registered through the customer app. This system
// only moderates its standing; everything else is read-only.
type User struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Mobile    string     `json:"mobile"`
	DOB       string     `json:"dob"`
	TripCount int        `json:"trip_count"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
