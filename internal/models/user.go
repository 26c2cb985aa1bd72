package models

import "time"

// User is a provisioned admin account. There is no password: sign-in is
// done through one-time links sent to Email.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
