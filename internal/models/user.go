package models

import "time"

// User is an anonymous account. Only the username identifies it; no email
// or real name is stored.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`

	PasswordHash string `json:"-"`
}
