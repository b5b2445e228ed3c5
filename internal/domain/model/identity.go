package model

import "time"

// Identity is a local credential record used by the password auth mode.
// It carries only authentication data; role membership lives in the
// caregiver/family directory tables and the configured admin email.
type Identity struct {
	ID           string    `json:"id"            db:"id"`
	Email        string    `json:"email"         db:"email"`
	PasswordHash string    `json:"-"             db:"password_hash"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}
