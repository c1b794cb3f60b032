// Package domain contains the core entities of the application.
package domain

import "time"

// Account represents an authenticated user account in the system.
type Account struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Stored hashed, never serialized
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName returns the account's display name, falling back to the username
// when no real name is set.
func (a *Account) FullName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	default:
		return a.Username
	}
}
