package model

import "time"

const RoleAdmin = "admin"

// Operator is an authenticated console admin. The record is owned by the
// external identity provider and the admins authorization table; this
// application only reads and caches it.
type Operator struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity is what the provider knows about a credential holder, before any
// authorization check.
type Identity struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
}
